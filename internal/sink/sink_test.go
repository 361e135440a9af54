package sink

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"evminspect/internal/disasm"
)

func TestFileWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	f := File{Dir: dir}
	contract := common.HexToAddress("0xAbCdEf0000000000000000000000000000000012")

	stream := disasm.Stream{disasm.Header(0), disasm.Mnemonic("PUSH1"), disasm.Raw(0x2a)}
	path, err := f.Write(contract, stream)
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	want := filepath.Join(dir, "abcdef0000000000000000000000000000000012.evm")
	if path != want {
		t.Errorf("Write() path = %s, want %s", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "@0     PUSH1 0x2a" {
		t.Errorf("listing = %q", data)
	}

	// A second write replaces the listing.
	if _, err := f.Write(contract, disasm.Stream{disasm.Mnemonic("STOP")}); err != nil {
		t.Fatal(err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != " STOP" {
		t.Errorf("listing after rewrite = %q", data)
	}
}

func TestFileWriteError(t *testing.T) {
	// Dir is a regular file, so it cannot be created as a directory.
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	f := File{Dir: blocker}
	if _, err := f.Write(common.Address{}, nil); err == nil {
		t.Error("Write() expected an error")
	}
}
