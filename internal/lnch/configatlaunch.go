//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"text/template"

	"github.com/e-gun/CourseNLPServer/internal/mm"
	"github.com/e-gun/CourseNLPServer/internal/str"
	"github.com/e-gun/CourseNLPServer/internal/vv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

var (
	Config = BuildDefaultConfig()
	Msg    = mm.NewMessageMaker(vv.MYNAME, vv.SHORTNAME, vv.VERSION)
)

// slicekeys - config paths that arrive from the environment as comma-separated strings
var slicekeys = []string{"corsorigins"}

// ConfigAtLaunch - defaults, then the config file, then the environment, then the command line
func ConfigAtLaunch() {
	const (
		FAIL1 = "ConfigAtLaunch() could not load the configuration"
		FAIL2 = "ConfigAtLaunch() failed to execute help text template"
		FAIL3 = "Refusing to set a workercount greater than NumCPU: %d > %d ---> setting workercount value to NumCPU: %d"
		FAIL4 = "Cannot find current working directory"
		MSG1  = "'%s' loaded"
		MSG2  = "no configuration file found; using defaults, environment and command line"
	)

	args := os.Args[1:]

	cfg, cf, err := LoadConfig(args)
	if err != nil {
		Msg.CRIT(FAIL1)
		Msg.EC(err)
	}
	Config = cfg
	UpdateMessageMakerWithConfig(Msg)

	help := func() {
		PrintVersion(*Config)
		PrintBuildInfo(*Config)

		cwd, e := os.Getwd()
		if e != nil {
			Msg.CRIT(FAIL4)
			cwd = "(unknown)"
		}
		uh, _ := os.UserHomeDir()

		m := map[string]interface{}{
			"conffile": vv.CONFIGBASIC,
			"corpus":   Config.CorpusFile,
			"cpus":     runtime.NumCPU(),
			"cwd":      cwd,
			"driver":   Config.DBDriver,
			"echoll":   Config.EchoLog,
			"envpref":  vv.ENVPREFIX,
			"envvar":   vv.CONFIGENVVAR,
			"cnsll":    Config.LogLevel,
			"home":     fmt.Sprintf(vv.CONFIGALTAPTH, uh),
			"host":     Config.HostIP,
			"logfmt":   Config.LogFormat,
			"port":     Config.HostPort,
			"workers":  Config.WorkerCount,
		}

		t := template.Must(template.New("").Parse(vv.HELPTEXTTEMPLATE))

		var b bytes.Buffer
		if ee := t.Execute(&b, m); ee != nil {
			Msg.CRIT(FAIL2)
		}
		fmt.Println(Msg.Styled(Msg.Color(b.String())))

		os.Exit(0)
	}

	for _, a := range args {
		switch a {
		case "-vv":
			PrintVersion(*Config)
			PrintBuildInfo(*Config)
			os.Exit(1)
		case "-v":
			fmt.Println(vv.VERSION + VersSuppl)
			os.Exit(1)
		case "-h":
			help()
		default:
			// do nothing
		}
	}

	if cf != "" {
		Msg.TMI(fmt.Sprintf(MSG1, cf))
	} else {
		Msg.TMI(MSG2)
	}

	if Config.WorkerCount > runtime.NumCPU() {
		Msg.CRIT(fmt.Sprintf(FAIL3, Config.WorkerCount, runtime.NumCPU(), runtime.NumCPU()))
		Config.WorkerCount = runtime.NumCPU()
	}
}

// LoadConfig - the layered configuration plus the name of the config file that was used, if any
func LoadConfig(args []string) (*str.CurrentConfiguration, string, error) {
	const (
		FAIL1 = "failed to load defaults: %w"
		FAIL2 = "failed to load config file %s: %w"
		FAIL3 = "failed to load environment variables: %w"
		FAIL4 = "failed to unmarshal configuration: %w"
	)

	k := koanf.New(".")

	// [a] defaults

	if err := k.Load(structs.Provider(BuildDefaultConfig(), "koanf"), nil); err != nil {
		return nil, "", fmt.Errorf(FAIL1, err)
	}

	// [b] the first config file found

	cf := FindConfigFile()
	if cf != "" {
		if err := k.Load(file.Provider(cf), yaml.Parser()); err != nil {
			return nil, "", fmt.Errorf(FAIL2, cf, err)
		}
	}

	// [c] CNS_HOSTPORT=3001, CNS_DBLOGIN__PASS=...

	if err := k.Load(env.Provider(vv.ENVPREFIX, ".", envtokey), nil); err != nil {
		return nil, "", fmt.Errorf(FAIL3, err)
	}
	splitslices(k)

	cfg := &str.CurrentConfiguration{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, "", fmt.Errorf(FAIL4, err)
	}

	// [d] the command line has the last word

	if err := ApplySwitches(cfg, args); err != nil {
		return nil, "", err
	}

	return cfg, cf, nil
}

// FindConfigFile - $CNS_CONFIG, then the working directory, then the home directory
func FindConfigFile() string {
	var candidates []string
	if ev := os.Getenv(vv.CONFIGENVVAR); ev != "" {
		candidates = append(candidates, ev)
	}
	candidates = append(candidates, vv.CONFIGBASIC)
	if uh, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(fmt.Sprintf(vv.CONFIGALTAPTH, uh), vv.CONFIGBASIC))
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// envtokey - CNS_DBLOGIN__HOST → dblogin.host
func envtokey(s string) string {
	s = strings.TrimPrefix(s, vv.ENVPREFIX)
	if s == strings.TrimPrefix(vv.CONFIGENVVAR, vv.ENVPREFIX) {
		// the config file pointer is not itself a setting
		return ""
	}
	return strings.ReplaceAll(strings.ToLower(s), "__", ".")
}

// splitslices - "a, b" → ["a", "b"] for the keys that hold lists
func splitslices(k *koanf.Koanf) {
	for _, p := range slicekeys {
		sv, ok := k.Get(p).(string)
		if !ok {
			continue
		}
		var kept []string
		for _, s := range strings.Split(sv, ",") {
			if s = strings.TrimSpace(s); s != "" {
				kept = append(kept, s)
			}
		}
		_ = k.Set(p, kept)
	}
}

// ApplySwitches - the value-setting command line switches; -h, -v and -vv are handled by ConfigAtLaunch()
func ApplySwitches(cfg *str.CurrentConfiguration, args []string) error {
	const (
		FAIL1 = "switch '%s' needs a value"
		FAIL2 = "switch '%s' needs a number: %w"
	)

	next := func(i int) (string, error) {
		if i+1 >= len(args) {
			return "", fmt.Errorf(FAIL1, args[i])
		}
		return args[i+1], nil
	}

	nextint := func(i int) (int, error) {
		v, err := next(i)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf(FAIL2, args[i], err)
		}
		return n, nil
	}

	var err error
	for i, a := range args {
		switch a {
		case "-bw":
			cfg.BlackAndWhite = true
		case "-cf":
			cfg.CorpusFile, err = next(i)
		case "-db":
			cfg.DBDriver, err = next(i)
		case "-dsn":
			cfg.DSN, err = next(i)
		case "-el":
			cfg.EchoLog, err = nextint(i)
		case "-ex":
			cfg.Extract = true
		case "-gl":
			cfg.LogLevel, err = nextint(i)
		case "-gz":
			cfg.Gzip = true
		case "-lf":
			cfg.LogFormat, err = next(i)
		case "-pc":
			cfg.ProfileCPU = true
		case "-pm":
			cfg.ProfileMEM = true
		case "-sa":
			cfg.HostIP, err = next(i)
		case "-sp":
			cfg.HostPort, err = nextint(i)
		case "-wc":
			cfg.WorkerCount, err = nextint(i)
		default:
			// do nothing
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// BuildDefaultConfig - return a CurrentConfiguration filled out with various default values
func BuildDefaultConfig() *str.CurrentConfiguration {
	var c str.CurrentConfiguration
	c.BlackAndWhite = false
	c.CorpusFile = vv.CORPUSFILENAME
	c.CORSOrigins = []string{"*"}
	c.DBDriver = vv.DEFAULTDBDRIVER
	c.DSN = ""
	c.EchoLog = vv.DEFAULTECHOLOGLEVEL
	c.Extract = false
	c.Gzip = false
	c.HostIP = vv.SERVEDFROMHOST
	c.HostPort = vv.SERVEDFROMPORT
	c.LemmaFallback = vv.LEMMAFALLBACKNONE
	c.LogFormat = vv.DEFAULTLOGFORMAT
	c.LogLevel = vv.DEFAULTGOLOGLEVEL
	c.MaxReqPerSec = vv.MAXECHOREQPERSECONDPERIP
	c.ProfileCPU = false
	c.ProfileMEM = false
	c.WorkerCount = runtime.NumCPU()

	c.DBLogin = str.PostgresLogin{
		Host:   vv.DEFAULTPSQLHOST,
		Port:   vv.DEFAULTPSQLPORT,
		User:   vv.DEFAULTPSQLUSER,
		Pass:   "",
		DBName: vv.DEFAULTPSQLDB,
	}

	return &c
}
