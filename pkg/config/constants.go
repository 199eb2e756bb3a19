package config

const (
	NoneKey = ""

	CompressionFormatGZipKey = "gzip"

	DefaultBindAddress = "0.0.0.0"

	MinPort = 0
	MaxPort = 65535

	HeaderAllowOrigin  = "Access-Control-Allow-Origin"
	HeaderAllowMethods = "Access-Control-Allow-Methods"
	HeaderAllowHeaders = "Access-Control-Allow-Headers"

	AllowOrigin  = "*"
	AllowMethods = "GET, POST, OPTIONS"
	AllowHeaders = "Content-Type"
)

var (
	KnownCompressionFormats = []string{NoneKey, CompressionFormatGZipKey}
)
