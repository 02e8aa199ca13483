package drops

import "testing"

func TestClassify_NonDropSubmissions(t *testing.T) {
	t.Parallel()

	for _, item := range []string{"Bounty Daily #3", "Weekly CHALLENGE", "challenge: skilling"} {
		if got := Classify(item); got.Drop {
			t.Fatalf("item %q classified as drop", item)
		}
	}

	if got := Classify("Dragon claws"); !got.Drop {
		t.Fatalf("regular drop not classified as drop")
	}
}

func TestClassify_NonExclusiveCategories(t *testing.T) {
	t.Parallel()

	got := Classify("Pet snakeling")
	if !got.Drop || !got.BossPet {
		t.Fatalf("pet should be both a drop and a boss pet: %+v", got)
	}

	got = Classify("Twisted bow")
	if !got.Drop || !got.MegaRare {
		t.Fatalf("twisted bow should be drop and mega-rare: %+v", got)
	}
}

func TestClassify_JarIsExactMatch(t *testing.T) {
	t.Parallel()

	if got := Classify(" JAR "); !got.Jar {
		t.Fatalf("exact jar (any case, padded) should count")
	}
	if got := Classify("Jar of miasma"); got.Jar {
		t.Fatalf("jar substring must not count as jar")
	}
}
