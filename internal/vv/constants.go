//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

import "time"

const (
	MYNAME    = "Course NLP Server"
	SHORTNAME = "CNS"
	VERSION   = "1.0.3"
	APITITLE  = "NLP API"
	APIDESCR  = "Text NLP processing API"

	CONFIGALTAPTH  = "%s/.config/coursenlp/" // %s = os.UserHomeDir()
	CONFIGBASIC    = "cns-config.yaml"
	CONFIGENVVAR   = "CNS_CONFIG"
	ENVPREFIX      = "CNS_"
	CORPUSFILENAME = "corpus.json"

	DEFAULTDBDRIVER     = "postgres"
	DEFAULTECHOLOGLEVEL = 0
	DEFAULTGOLOGLEVEL   = 2
	DEFAULTLOGFORMAT    = "console"
	DEFAULTPSQLHOST     = "127.0.0.1"
	DEFAULTPSQLUSER     = "cns_rd"
	DEFAULTPSQLPORT     = 5432
	DEFAULTPSQLDB       = "cwdb"
	DEFAULTSQLITEFILE   = "cwdb.sqlite"
	LEMMAFALLBACKNONE   = "none"
	LEMMAFALLBACKSTEM   = "snowball"
	SERVEDFROMHOST      = "127.0.0.1"
	SERVEDFROMPORT      = 3000

	JSONINDENT               = "    " // matches the 4-space indentation of the corpus file
	MAXECHOREQPERSECONDPERIP = 20
	PROGRESSEVERYNLINES      = 250
	SCALEPLOTBY              = 10
	WRITEPERMS               = 0644

	TIMEOUTRD = 60 * time.Second
	TIMEOUTWR = 300 * time.Second // a k-means sweep over many k values can be slow
)

const (
	// model settings: the usual library defaults; the seeds keep topics and clusters repeatable

	NMFMAXITER     = 1000
	NMFTOLERANCE   = 1e-4
	NMFSEED        = 0
	KMEANSNINIT    = 10
	KMEANSMAXITER  = 300
	KMEANSTOL      = 1e-4
	KMEANSSEED     = 0
	MINTOKENLENGTH = 2 // single letters are not features: cf. the usual `\b\w\w+\b` token pattern
)
