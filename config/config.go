package config

// Defaults for the subject and query assembly names and the server port.
const (
	DefaultSubject = "hg19"
	DefaultQuery   = "mm10"
	DefaultPort    = 6480
)

type Config struct {
	MafDir, Subject, Query string
	Port, Cpu              int
	SortBlocks             bool
}

func NewConfig(mafDir, subject, query string, port, cpu int, sortBlocks bool) *Config {
	return &Config{mafDir, subject, query, port, cpu, sortBlocks}
}
