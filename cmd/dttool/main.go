package main

import (
	"fmt"
	"os"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/fcdt/dttool"
)

const (
	checkmark = "✓"
	crossmark = "✗"
)

type settings struct {
	outDir string
	kind   dttool.Kind
}

func main() {
	app := kingpin.New("dttool", "Convert ._dt game data tables to JSON and back")
	app.HelpFlag.Short('h')

	var (
		logLevel = app.Flag("log-level", "Log level (debug, info, warning, error, none)").Envar("DTTOOL_LOG_LEVEL").Default("warning").String()
		kind     = app.Flag("kind", "Table kind, detected from the file name if auto").Short('k').Default("auto").Enum("auto", "book", "item")
		outDir   = app.Flag("output", "Output directory").Short('o').Envar("DTTOOL_OUTPUT").Default(".").String()
	)

	decode := app.Command("decode", "Convert binary tables to JSON")
	decodeFiles := decode.Arg("files", "Binary table files (._dt)").Required().ExistingFiles()

	encode := app.Command("encode", "Convert JSON tables to binary")
	encodeFiles := encode.Arg("files", "JSON table files").Required().ExistingFiles()

	verify := app.Command("verify", "Check that binary tables survive a round trip unchanged")
	verifyFiles := verify.Arg("files", "Binary table files (._dt)").Required().ExistingFiles()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	dttool.SetLogLevel(*logLevel)

	k, err := dttool.ParseKind(*kind)
	app.FatalIfError(err, "")
	s := settings{
		outDir: *outDir,
		kind:   k,
	}

	switch command {
	case decode.FullCommand():
		err = doDecode(s, *decodeFiles)
	case encode.FullCommand():
		err = doEncode(s, *encodeFiles)
	case verify.FullCommand():
		err = doVerify(s, *verifyFiles)
	default:
		err = fmt.Errorf("unknown command: %q", command)
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}
