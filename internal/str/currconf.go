//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

type CurrentConfiguration struct {
	BlackAndWhite bool          `koanf:"blackandwhite"`
	CorpusFile    string        `koanf:"corpusfile"`
	CORSOrigins   []string      `koanf:"corsorigins"`
	DBDriver      string        `koanf:"dbdriver"` // "postgres" or "sqlite"
	DBLogin       PostgresLogin `koanf:"dblogin"`
	DSN           string        `koanf:"dsn"` // overrides DBLogin when set
	EchoLog       int           `koanf:"echolog"` // 0: "none", 1: "terse", 2: "prolix", 3: "prolix+remoteip"
	Extract       bool          `koanf:"extract"`
	Gzip          bool          `koanf:"gzip"`
	HostIP        string        `koanf:"hostip"`
	HostPort      int           `koanf:"hostport"`
	LemmaFallback string        `koanf:"lemmafallback"` // "none" or "snowball"
	LemmataEN     string        `koanf:"lemmataen"`     // optional TSV: form<TAB>lemma
	LemmataRU     string        `koanf:"lemmataru"`
	LogFormat     string        `koanf:"logformat"` // "console" or "json"
	LogLevel      int           `koanf:"loglevel"`
	MaxReqPerSec  int           `koanf:"maxreqpersec"`
	ProfileCPU    bool          `koanf:"profilecpu"`
	ProfileMEM    bool          `koanf:"profilemem"`
	StopwordsFile string        `koanf:"stopwordsfile"` // optional extra stopwords, one per line
	WorkerCount   int           `koanf:"workercount"`
}
