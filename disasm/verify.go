package disasm

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
)

// VerifyCase is one entry in the encoder's round-trip verification
// table: an already-encoded word plus the textual assembly that should
// produce the identical word when assembled by a system assembler.
type VerifyCase struct {
	Name     string // operation under test, e.g. "ADD X0,X1,X2"
	Word     uint32
	Assembly string // e.g. "add x0, x1, x2"
}

// Mismatch records one VerifyCase whose assembled word differed from
// the encoder's.
type Mismatch struct {
	Case      VerifyCase
	Assembled uint32
}

// VerifierConfig names the external tools the round-trip harness
// shells out to. The zero value uses "clang"/"otool", matching the
// teacher's os/exec convention of invoking external tools by bare name
// and letting PATH resolve them.
type VerifierConfig struct {
	Assembler   string
	ObjdumpTool string
}

func (c VerifierConfig) assembler() string {
	if c.Assembler == "" {
		return "clang"
	}
	return c.Assembler
}

func (c VerifierConfig) objdump() string {
	if c.ObjdumpTool == "" {
		return "otool"
	}
	return c.ObjdumpTool
}

// RoundTrip assembles each case's textual form with the configured
// system assembler, extracts the resulting machine word, and compares
// it to the case's expected word. It returns every case whose
// assembled word did not match; an empty, non-nil slice means every
// case round-tripped.
func RoundTrip(cfg VerifierConfig, cases []VerifyCase) ([]Mismatch, error) {
	var mismatches []Mismatch
	for _, c := range cases {
		word, err := assembleOne(cfg, c.Assembly)
		if err != nil {
			return nil, fmt.Errorf("assembling %q: %w", c.Name, err)
		}
		if word != c.Word {
			mismatches = append(mismatches, Mismatch{Case: c, Assembled: word})
		}
	}
	if mismatches == nil {
		mismatches = []Mismatch{}
	}
	return mismatches, nil
}

// assembleOne assembles a single instruction's textual form and
// extracts its encoded 32-bit word via clang -c followed by an
// otool/objdump-style disassembly of the resulting object file.
func assembleOne(cfg VerifierConfig, asmText string) (uint32, error) {
	dir, err := os.MkdirTemp("", "fasterbasic-verify-*")
	if err != nil {
		return 0, err
	}
	defer os.RemoveAll(dir)

	src := filepath.Join(dir, "case.s")
	obj := filepath.Join(dir, "case.o")
	body := fmt.Sprintf(".text\n.globl _case\n_case:\n%s\n", asmText)
	if err := os.WriteFile(src, []byte(body), 0644); err != nil {
		return 0, err
	}

	asCmd := exec.Command(cfg.assembler(), "-target", "arm64-apple-macos", "-c", src, "-o", obj)
	var asErr bytes.Buffer
	asCmd.Stderr = &asErr
	if err := asCmd.Run(); err != nil {
		return 0, fmt.Errorf("%s: %w: %s", cfg.assembler(), err, asErr.String())
	}

	dumpCmd := exec.Command(cfg.objdump(), "-t", "-v", obj)
	out, err := dumpCmd.Output()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", cfg.objdump(), err)
	}
	return extractFirstWord(out)
}

var hexWordRe = regexp.MustCompile(`([0-9a-fA-F]{8})`)

// extractFirstWord pulls the first 8-hex-digit word out of an
// otool -t -v style hex dump and returns it as a little-endian word,
// matching how the bytes appear in the object file's .text section.
func extractFirstWord(dump []byte) (uint32, error) {
	m := hexWordRe.Find(dump)
	if m == nil {
		return 0, fmt.Errorf("no hex word found in tool output")
	}
	var n uint32
	if _, err := fmt.Sscanf(string(m), "%08x", &n); err != nil {
		return 0, err
	}
	var raw [4]byte
	binary.BigEndian.PutUint32(raw[:], n)
	return binary.LittleEndian.Uint32(raw[:]), nil
}
