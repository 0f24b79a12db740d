package sheet

import "testing"

func TestMarksDisabled(t *testing.T) {
	m := Marks(600, 500, MarkOptions{}, SheetPosition{})
	if len(m.Crop) != 0 || len(m.Fold) != 0 || m.Label != nil {
		t.Errorf("disabled options produced marks: %+v", m)
	}
	if (MarkOptions{}).Any() {
		t.Error("empty options should report Any() == false")
	}
}

func TestCropTicks(t *testing.T) {
	m := Marks(600, 500, MarkOptions{Crop: true}, SheetPosition{})

	if len(m.Crop) != 8 {
		t.Fatalf("got %d crop segments, want 8 (two per corner)", len(m.Crop))
	}
	for i, l := range m.Crop {
		// Each tick stays within the sheet
		for _, v := range []float64{l.X1, l.X2} {
			if v < 0 || v > 600 {
				t.Errorf("segment %d x coordinate %g outside sheet", i, v)
			}
		}
		for _, v := range []float64{l.Y1, l.Y2} {
			if v < 0 || v > 500 {
				t.Errorf("segment %d y coordinate %g outside sheet", i, v)
			}
		}
		horizontal := l.Y1 == l.Y2
		vertical := l.X1 == l.X2
		if horizontal == vertical {
			t.Errorf("segment %d is neither horizontal nor vertical: %+v", i, l)
		}
	}
}

func TestFoldTicksOnCenterLine(t *testing.T) {
	m := Marks(600, 500, MarkOptions{Fold: true}, SheetPosition{})

	if len(m.Fold) != 2 {
		t.Fatalf("got %d fold segments, want 2", len(m.Fold))
	}
	for i, l := range m.Fold {
		if l.X1 != 300 || l.X2 != 300 {
			t.Errorf("fold segment %d not on the center line: %+v", i, l)
		}
	}
	// One tick at the top edge, one at the bottom
	if m.Fold[0].Y1 < m.Fold[1].Y1 {
		t.Error("expected top tick first, bottom tick second")
	}
}

func TestSignatureOrderLabel(t *testing.T) {
	m := Marks(600, 500, MarkOptions{SignatureOrder: true}, SheetPosition{
		Signature:  1,
		Signatures: 3,
		Sheet:      0,
		Sheets:     6,
		Face:       "front",
	})

	if m.Label == nil {
		t.Fatal("missing signature-order label")
	}
	if m.Label.Text != "sig 2/3 sheet 1 front" {
		t.Errorf("label = %q, want %q", m.Label.Text, "sig 2/3 sheet 1 front")
	}
	if m.Label.X <= 0 || m.Label.Y <= 0 {
		t.Errorf("label anchor %g,%g outside sheet margin", m.Label.X, m.Label.Y)
	}
}
