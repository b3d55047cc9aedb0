package sqlite

// ClientOption configures Client.
type ClientOption func(*ClientConfig)

// ClientConfig holds client configuration.
type ClientConfig struct {
	Path          string
	BusyTimeoutMS int
	JournalMode   string
}

// WithPath sets the database file path.
func WithPath(path string) ClientOption {
	return func(c *ClientConfig) {
		c.Path = path
	}
}

// WithBusyTimeout sets the busy timeout in milliseconds.
func WithBusyTimeout(ms int) ClientOption {
	return func(c *ClientConfig) {
		c.BusyTimeoutMS = ms
	}
}

// WithJournalMode sets the journal mode (WAL by default).
func WithJournalMode(mode string) ClientOption {
	return func(c *ClientConfig) {
		c.JournalMode = mode
	}
}
