package beatvm

import (
	"bytes"
	"testing"
)

func TestSnapshot(t *testing.T) {
	p := NewProgram(nil, 4)
	p.Poke(1, 11)
	p.Set('t', 42)
	p.SetCC(3, 33)
	p.SetVC(7, 77)
	buf := new(bytes.Buffer)
	if err := p.Snapshot(buf); err != nil {
		t.Fatal(err)
	}

	// same size
	p2 := NewProgram(nil, 4)
	if err := p2.Restore(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatal(err)
	}
	if p2.Peek(1) != 11 || p2.Get('t') != 42 || p2.GetCC(3) != 33 || p2.GetVC(7) != 77 {
		t.Fatal()
	}

	// smaller user memory, variables map by name
	p3 := NewProgram(nil, 1)
	if err := p3.Restore(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatal(err)
	}
	if p3.Get('t') != 42 {
		t.Fatalf("got %d", p3.Get('t'))
	}
	if p3.Peek(0) != 0 {
		t.Fatal()
	}

	if err := p3.Restore(bytes.NewReader([]byte{0xff})); err == nil {
		t.Fatal("expected error")
	}
}

func TestDisassemble(t *testing.T) {
	str := Disassemble([]Op{
		push(ChannelAll),
		push(1),
		OpSetChannel.Op(),
		{Code: 200},
	})
	expected := "0000 push 18446744073709551615\n" +
		"0001 push 1\n" +
		"0002 setch\n" +
		"0003 op(200)\n"
	if str != expected {
		t.Fatalf("got %q", str)
	}
}
