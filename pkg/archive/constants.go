// pkg/archive/constants.go
package archive

// Format identifies a package container format
type Format string

const (
	// FormatZip is the default .dllx container
	FormatZip Format = "zip"
	// FormatTar is an uncompressed tar stream
	FormatTar Format = "tar"
	// FormatTarGz is a gzip-compressed tar stream
	FormatTarGz Format = "tar.gz"
	// FormatTarXz is an xz-compressed tar stream
	FormatTarXz Format = "tar.xz"
	// FormatTarZst is a zstd-compressed tar stream
	FormatTarZst Format = "tar.zst"
	// FormatNar is a Nix archive
	FormatNar Format = "nar"
)

// Formats lists every supported container format
var Formats = []Format{FormatZip, FormatTar, FormatTarGz, FormatTarXz, FormatTarZst, FormatNar}

// extensions maps file name suffixes to formats, longest suffixes first
var extensions = []struct {
	suffix string
	format Format
}{
	{".tar.gz", FormatTarGz},
	{".tar.xz", FormatTarXz},
	{".tar.zst", FormatTarZst},
	{".dllx", FormatZip},
	{".zip", FormatZip},
	{".tgz", FormatTarGz},
	{".txz", FormatTarXz},
	{".tzst", FormatTarZst},
	{".tar", FormatTar},
	{".nar", FormatNar},
}

var (
	magicZip      = []byte("PK\x03\x04")
	magicZipEmpty = []byte("PK\x05\x06")
	magicGzip     = []byte{0x1f, 0x8b}
	magicXz       = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	magicZstd     = []byte{0x28, 0xb5, 0x2f, 0xfd}
	// NAR strings are length-prefixed little-endian uint64s
	magicNar = append([]byte{13, 0, 0, 0, 0, 0, 0, 0}, "nix-archive-1"...)
	// "ustar" appears at offset 257 of a POSIX tar header
	magicTar       = []byte("ustar")
	magicTarOffset = 257
)

const (
	defaultDirMode  = 0o755
	defaultFileMode = 0o644
)
