package cfg

type Cfg struct {
	// Storage configuration
	BlobDriver  string
	DataDir     string
	DataKey     string
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3PathStyle bool

	// Application configuration
	Port           string
	SourcesFile    string
	ScrapeInterval int
	Once           bool
	HTTPTimeout    int
	HTTPRetries    int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
