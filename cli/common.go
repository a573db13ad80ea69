package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mvbdecode/mvbdecode/config"
	"github.com/mvbdecode/mvbdecode/pipeline"
	"github.com/mvbdecode/mvbdecode/sample"
	"github.com/mvbdecode/mvbdecode/telegram"
)

// openInput opens path for reading, treating "-" as stdin.
func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

// maxRecords parses the optional trailing positional record-count limit,
// falling back to the configured profile default (0 = unbounded).
func maxRecords(args []string) (int, error) {
	if len(args) < 2 {
		return config.MaxRecords, nil
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, fmt.Errorf("invalid record count %q: %w", args[1], err)
	}
	return n, nil
}

// polarity resolves the configured line polarity convention onto
// sample.Polarity.
func polarity() sample.Polarity {
	if config.PolarityName == "direct" {
		return sample.PolarityDirect
	}
	return sample.PolarityInverted
}

// renderRecord writes the human-readable telegram log line for rec:
// "t=<seconds:.6f> :: MASTER [<request_name>] -> [port|physical
// 0x<addr:03x>] :: <slave-description-or-"no slave frame">".
func renderRecord(w io.Writer, rec *pipeline.Record) error {
	slaveDesc := "no slave frame"
	if rec.Slave != nil {
		slaveDesc = rec.Slave.String()
	}
	_, err := fmt.Fprintf(w, "t=%.6f :: %s :: %s\n", rec.T, rec.Master.String(), slaveDesc)
	return err
}

// renderCSV writes the intermediate bit-exact "t,master_hex,slave_hex" line
// for rec, the format emitted by the physical decoder + pairing stages and
// consumed by the "parse" command.
func renderCSV(w io.Writer, rec *pipeline.Record) error {
	_, err := fmt.Fprint(w, telegram.EncodeCSVLine(rec.T, rec.RawMaster, rec.RawSlave))
	return err
}
