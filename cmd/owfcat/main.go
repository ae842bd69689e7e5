// Command owfcat encodes, decodes, prints, and validates OWF packets from
// the command line, the thin CLI adapter spec.md's §1 scope note allows
// around the core codec, built the way the teacher's kr CLI is built:
// github.com/urfave/cli for command parsing, github.com/fatih/color for
// diagnostics.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/numinit/open-waveform-format/codec"
	"github.com/urfave/cli"
)

func printFatal(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, red(fmt.Sprintf(format, args...)))
	os.Exit(1)
}

func openInput(c *cli.Context) (io.ReadCloser, error) {
	if path := c.String("in"); path != "" && path != "-" {
		return os.Open(path)
	}
	return io.NopCloser(os.Stdin), nil
}

func openOutput(c *cli.Context) (io.WriteCloser, error) {
	if path := c.String("out"); path != "" && path != "-" {
		return os.Create(path)
	}
	return nopWriteCloser{os.Stdout}, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func sourceFrom(r io.Reader) codec.Source {
	return func(dst []byte) bool {
		_, err := io.ReadFull(r, dst)
		return err == nil
	}
}

func sinkTo(w io.Writer) codec.Sink {
	return func(src []byte) bool {
		_, err := w.Write(src)
		return err == nil
	}
}

func encodeCommand(c *cli.Context) error {
	in, err := openInput(c)
	if err != nil {
		printFatal("opening input: %v", err)
	}
	defer in.Close()

	var jp jsonPackage
	if err := json.NewDecoder(in).Decode(&jp); err != nil {
		printFatal("parsing json: %v", err)
	}
	pkg, err := jp.toPackage()
	if err != nil {
		printFatal("building package: %v", err)
	}

	out, err := openOutput(c)
	if err != nil {
		printFatal("opening output: %v", err)
	}
	defer out.Close()

	enc := codec.NewEncoder(sinkTo(out))
	if err := enc.Encode(pkg); err != nil {
		printFatal("encoding: %v", err)
	}
	return nil
}

func decodeCommand(c *cli.Context) error {
	in, err := openInput(c)
	if err != nil {
		printFatal("opening input: %v", err)
	}
	defer in.Close()

	dec := codec.NewDecoder(sourceFrom(in))
	pkg, err := dec.DecodeDOM(nil)
	if err != nil {
		reportCodecError(err)
		os.Exit(1)
	}

	out, err := openOutput(c)
	if err != nil {
		printFatal("opening output: %v", err)
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(fromPackage(pkg))
}

func catCommand(c *cli.Context) error {
	in, err := openInput(c)
	if err != nil {
		printFatal("opening input: %v", err)
	}
	defer in.Close()

	dec := codec.NewDecoder(sourceFrom(in))
	depth := 0
	indent := func() string {
		s := ""
		for i := 0; i < depth; i++ {
			s += "  "
		}
		return s
	}

	visit := func(n codec.Node) bool {
		switch {
		case n.Channel != nil:
			fmt.Printf("%s%s %s\n", indent(), cyan("channel"), n.Channel.ID().String())
			depth++
		case n.Namespace != nil:
			fmt.Printf("%s%s %s [%d, %d)\n", indent(), cyan("namespace"), n.Namespace.ID().String(), n.Namespace.T0, n.Namespace.T0+int64(n.Namespace.Dt))
		case n.Signal != nil:
			fmt.Printf("%s%s %s (%s), %d samples\n", indent(), green("signal"), n.Signal.ID().String(), n.Signal.Unit().String(), n.Signal.NumSamples())
		case n.Event != nil:
			fmt.Printf("%s%s t0=%d %q\n", indent(), yellow("event"), n.Event.T0, n.Event.Message().String())
		case n.Alarm != nil:
			fmt.Printf("%s%s t0=%d dt=%d level=%d volume=%d %s %q\n", indent(), red("alarm"), n.Alarm.T0, n.Alarm.Dt, n.Alarm.Level, n.Alarm.Volume, n.Alarm.Type().String(), n.Alarm.Message().String())
		}
		return true
	}

	if err := dec.Walk(visit); err != nil {
		reportCodecError(err)
		os.Exit(1)
	}
	return nil
}

func validateCommand(c *cli.Context) error {
	in, err := openInput(c)
	if err != nil {
		printFatal("opening input: %v", err)
	}
	defer in.Close()

	dec := codec.NewDecoder(sourceFrom(in))
	if _, err := dec.DecodeDOM(nil); err != nil {
		reportCodecError(err)
		os.Exit(1)
	}
	fmt.Println(green("OK"))
	return nil
}

func reportCodecError(err error) {
	if ce, ok := err.(*codec.Error); ok {
		fmt.Fprintf(os.Stderr, "%s %s: %s (trace %s)\n", red("error"), ce.Kind, ce.Message, ce.TraceID.String())
		return
	}
	fmt.Fprintf(os.Stderr, "%s %v\n", red("error"), err)
}

func ioFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{Name: "in", Usage: "input path, or - for stdin"},
		cli.StringFlag{Name: "out", Usage: "output path, or - for stdout"},
	}
}

func main() {
	app := cli.NewApp()
	app.Name = "owfcat"
	app.Usage = "encode, decode, print, and validate Open Wire Format packets"
	app.Version = "0.1.0"
	app.Commands = []cli.Command{
		{
			Name:   "encode",
			Usage:  "Encode a JSON package description into OWF binary.",
			Flags:  ioFlags(),
			Action: encodeCommand,
		},
		{
			Name:   "decode",
			Usage:  "Decode an OWF binary packet into JSON.",
			Flags:  ioFlags(),
			Action: decodeCommand,
		},
		{
			Name:   "cat",
			Usage:  "Stream-print an OWF binary packet's structure to stdout.",
			Flags:  []cli.Flag{cli.StringFlag{Name: "in", Usage: "input path, or - for stdin"}},
			Action: catCommand,
		},
		{
			Name:   "validate",
			Usage:  "Validate an OWF binary packet, printing OK or an error.",
			Flags:  []cli.Flag{cli.StringFlag{Name: "in", Usage: "input path, or - for stdin"}},
			Action: validateCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		printFatal("%v", err)
	}
}
