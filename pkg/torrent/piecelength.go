package torrent

// Piece-length policy for newly built torrents: a monotonic table keyed by
// total size, bounding the piece-hash list to a few thousand entries.
const (
	kib = int64(1) << 10
	mib = int64(1) << 20
	gib = int64(1) << 30
)

var pieceLengthTable = []struct {
	maxSize int64
	piece   int64
}{
	{64 * mib, 32 * kib},
	{128 * mib, 64 * kib},
	{256 * mib, 128 * kib},
	{512 * mib, 256 * kib},
	{1 * gib, 512 * kib},
	{2 * gib, 1 * mib},
	{4 * gib, 2 * mib},
	{8 * gib, 4 * mib},
	{16 * gib, 8 * mib},
}

// PieceLengthFor selects the piece length for a release of the given total
// size. Pure function: larger releases always get equal or larger pieces.
func PieceLengthFor(totalSize int64) int64 {
	for _, row := range pieceLengthTable {
		if totalSize <= row.maxSize {
			return row.piece
		}
	}
	return 16 * mib
}
