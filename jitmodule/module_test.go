package jitmodule

import "testing"

func TestEmitAppendsLittleEndian(t *testing.T) {
	m := New()
	off := m.Emit(0xD503201F) // NOP
	if off != 0 {
		t.Fatalf("first Emit offset = %d, want 0", off)
	}
	want := []byte{0x1F, 0x20, 0x03, 0xD5}
	for i, b := range want {
		if m.Code[i] != b {
			t.Errorf("Code[%d] = %#x, want %#x", i, m.Code[i], b)
		}
	}
}

func TestEmitPanicsAfterSeal(t *testing.T) {
	m := New()
	m.Seal()
	defer func() {
		if recover() == nil {
			t.Error("expected Emit after Seal to panic")
		}
	}()
	m.Emit(0)
}

func TestLabelsAndSymbols(t *testing.T) {
	m := New()
	m.Emit(0)
	label := m.NewLabel()
	m.DefineLabel(label)
	m.Emit(0)
	m.DefineSymbol("MAIN")

	if m.Labels[label] != 4 {
		t.Errorf("label offset = %d, want 4", m.Labels[label])
	}
	sym, ok := m.Symbols["MAIN"]
	if !ok || sym.Kind != SymbolLocal || sym.Offset != 8 {
		t.Errorf("unexpected symbol entry: %+v (ok=%v)", sym, ok)
	}
}

func TestRecordExtCallDeclaresExternal(t *testing.T) {
	m := New()
	off := m.Emit(0)
	m.RecordExtCall("puts", off)

	sym, ok := m.Symbols["puts"]
	if !ok || sym.Kind != SymbolExternal {
		t.Fatalf("expected external symbol puts, got %+v (ok=%v)", sym, ok)
	}
	if len(m.ExtCalls) != 1 || m.ExtCalls[0].InstructionOffset != off {
		t.Errorf("unexpected ext call record: %+v", m.ExtCalls)
	}
}

func TestSourceMapAndCommentsAppendInOffsetOrder(t *testing.T) {
	m := New()
	m.Emit(0)
	m.AnnotateSource(10)
	m.Emit(0)
	m.AnnotateSource(20)
	m.AnnotateComment("loop start")

	if len(m.SourceMap) != 2 || m.SourceMap[0].CodeOffset > m.SourceMap[1].CodeOffset {
		t.Errorf("source map not monotonic: %+v", m.SourceMap)
	}
	if len(m.CommentMap) != 1 || m.CommentMap[0].Text != "loop start" {
		t.Errorf("unexpected comment map: %+v", m.CommentMap)
	}
}
