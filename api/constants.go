package api

const (
	// DefaultFilePermissions for temp directory creation
	DefaultFilePermissions = 0755

	// ZipFilename is the download name used when several documents are returned
	ZipFilename = "overlay_output.zip"

	// MaxSuffixLength limits the user-supplied output suffix
	MaxSuffixLength = 64

	// MaxErrorLength truncates error messages returned to the client
	MaxErrorLength = 200

	// MIME types accepted and produced by the overlay endpoint
	MIMEPNG = "image/png"
	MIMEPDF = "application/pdf"
	MIMEZip = "application/zip"
)
