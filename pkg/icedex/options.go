package icedex

// ConvertOptions configures shapefile-to-dex conversion.
type ConvertOptions struct {
	// OutDir is the directory the dex file is written to.
	// Empty means the current working directory.
	OutDir string
}

// DefaultConvertOptions returns default options.
func DefaultConvertOptions() ConvertOptions {
	return ConvertOptions{}
}
