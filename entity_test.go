package blur

import "testing"

func TestEntityFromSnapshot_FoldsTransform(t *testing.T) {
	snap := Snapshot{
		Texture:   &fakeTexture{size: ISize{Width: 8, Height: 8}},
		Transform: Translate(4, 4),
		Opacity:   1,
	}
	e := EntityFromSnapshot(snap, BlendSourceOver)
	if e.Transform != Translate(4, 4) {
		t.Errorf("entity transform = %+v, want the snapshot transform", e.Transform)
	}

	coverage, ok := e.Coverage()
	if !ok {
		t.Fatal("Coverage returned ok=false")
	}
	if want := RectXYWH(4, 4, 8, 8); coverage != want {
		t.Errorf("coverage = %+v, want %+v", coverage, want)
	}
}

func TestEntity_RenderWithoutContents(t *testing.T) {
	e := NewEntity()
	if !e.Render(&fakeRenderer{}, &recordedPass{}) {
		t.Error("empty entity Render returned false")
	}
	if _, ok := e.Coverage(); ok {
		t.Error("empty entity Coverage returned ok=true")
	}
}

func TestClipContents_ReportsNoCoverage(t *testing.T) {
	e := NewEntity()
	e.Contents = NewClipContents(ClipIntersect, NewRectGeometry(RectXYWH(0, 0, 4, 4)))
	if _, ok := e.Coverage(); ok {
		t.Error("clip contents reported coverage; clips never expand drawing")
	}

	pass := &recordedPass{}
	if !e.Render(&fakeRenderer{}, pass) {
		t.Fatal("clip Render returned false")
	}
	if len(pass.clips) != 1 {
		t.Fatalf("recorded %d clips, want 1", len(pass.clips))
	}
}

func TestSnapshotContents_DrawPlacement(t *testing.T) {
	snap := Snapshot{
		Texture:   &fakeTexture{size: ISize{Width: 8, Height: 8}},
		Transform: Identity(),
		Opacity:   0.5,
	}
	e := EntityFromSnapshot(snap, BlendSourceOver)
	e.Transform = Scale(2, 2)
	e.ClipDepth = 7

	pass := &recordedPass{}
	if !e.Render(&fakeRenderer{}, pass) {
		t.Fatal("Render returned false")
	}
	if len(pass.snapshots) != 1 {
		t.Fatalf("recorded %d snapshots, want 1", len(pass.snapshots))
	}
	d := pass.snapshots[0]
	if d.Transform != Scale(2, 2) {
		t.Errorf("draw transform = %+v, want the entity transform", d.Transform)
	}
	if d.ClipDepth != 7 {
		t.Errorf("draw clip depth = %d, want 7", d.ClipDepth)
	}
	if d.Snapshot.Opacity != 0.5 {
		t.Errorf("draw opacity = %v, want 0.5", d.Snapshot.Opacity)
	}
}

func TestRectGeometry_Coverage(t *testing.T) {
	g := NewRectGeometry(RectXYWH(1, 1, 4, 4))
	got, ok := g.Coverage(Scale(2, 2))
	if !ok {
		t.Fatal("Coverage returned ok=false")
	}
	if want := RectXYWH(2, 2, 8, 8); got != want {
		t.Errorf("Coverage = %+v, want %+v", got, want)
	}

	if _, ok := NewRectGeometry(Rect{}).Coverage(Identity()); ok {
		t.Error("empty geometry reported coverage")
	}
}
