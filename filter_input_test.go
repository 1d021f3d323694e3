package blur

import "testing"

func TestTextureInput_EmptyTexture(t *testing.T) {
	entity := NewEntity()
	input := NewTextureInput(&fakeTexture{}, Identity())
	if _, ok := input.GetSnapshot("test", &fakeRenderer{}, &entity, nil, 1); ok {
		t.Error("GetSnapshot of an empty texture returned ok=true")
	}
}

func TestEntityInput_CapturesSource(t *testing.T) {
	source := EntityFromSnapshot(Snapshot{
		Texture:   &fakeTexture{size: ISize{Width: 8, Height: 8}, mips: 1},
		Transform: Translate(2, 2),
		Opacity:   1,
	}, BlendSourceOver)

	r := &fakeRenderer{backend: BackendWebGPU}
	entity := NewEntity()
	input := NewEntityInput(source)

	coverage, ok := input.Coverage(&entity)
	if !ok {
		t.Fatal("Coverage returned ok=false")
	}
	if want := RectXYWH(2, 2, 8, 8); coverage != want {
		t.Errorf("coverage = %+v, want %+v", coverage, want)
	}

	snap, ok := input.GetSnapshot("capture", r, &entity, nil, 1)
	if !ok {
		t.Fatal("GetSnapshot returned ok=false")
	}
	if snap.Transform != Translate(2, 2) {
		t.Errorf("snapshot transform = %+v, want Translate(2, 2)", snap.Transform)
	}
	if got := snap.Texture.Size(); got != (ISize{Width: 8, Height: 8}) {
		t.Errorf("snapshot size = %+v, want 8x8", got)
	}
	if len(r.passes) != 1 {
		t.Fatalf("recorded %d passes, want 1", len(r.passes))
	}
	if r.submitted != 1 {
		t.Errorf("submitted %d command buffers, want 1", r.submitted)
	}
	draws := r.passes[0].snapshots
	if len(draws) != 1 {
		t.Fatalf("recorded %d snapshot draws, want 1", len(draws))
	}
	// The source is repositioned so its coverage starts at the origin.
	if draws[0].Transform != Identity() {
		t.Errorf("capture draw transform = %+v, want identity", draws[0].Transform)
	}
}

func TestEntityInput_CoverageLimitShrinksCapture(t *testing.T) {
	source := EntityFromSnapshot(Snapshot{
		Texture:   &fakeTexture{size: ISize{Width: 8, Height: 8}, mips: 1},
		Transform: Identity(),
		Opacity:   1,
	}, BlendSourceOver)

	r := &fakeRenderer{backend: BackendWebGPU}
	entity := NewEntity()
	limit := RectXYWH(0, 0, 4, 4)

	snap, ok := NewEntityInput(source).GetSnapshot("capture", r, &entity, &limit, 1)
	if !ok {
		t.Fatal("GetSnapshot returned ok=false")
	}
	if got := snap.Texture.Size(); got != (ISize{Width: 4, Height: 4}) {
		t.Errorf("snapshot size = %+v, want 4x4", got)
	}

	outside := RectXYWH(100, 100, 4, 4)
	if _, ok := NewEntityInput(source).GetSnapshot("capture", r, &entity, &outside, 1); ok {
		t.Error("GetSnapshot with a disjoint limit returned ok=true")
	}
}
