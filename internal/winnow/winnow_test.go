// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package winnow

import "testing"

func tokenStream(n int) []string {
	labels := []string{"identifier", "call_expression", "binary_expression", "block", "if_statement"}
	out := make([]string, n)
	for i := range out {
		out[i] = labels[i%len(labels)]
	}
	return out
}

func TestFingerprintsEmptyBelowK(t *testing.T) {
	f := New(5, 4, false)
	if got := f.Fingerprints(tokenStream(3)); got != nil {
		t.Errorf("expected nil for fewer than k tokens, got %v", got)
	}
}

func TestFingerprintsFirstWindowAlwaysEmits(t *testing.T) {
	f := New(4, 3, false)
	fps := f.Fingerprints(tokenStream(10))
	if len(fps) == 0 {
		t.Fatal("expected at least one fingerprint")
	}
	if fps[0].Start != 0 && fps[0].Start >= f.W {
		t.Errorf("first emitted fingerprint should come from the first window, got start=%d", fps[0].Start)
	}
}

func TestFingerprintsNoConsecutiveDuplicateSelection(t *testing.T) {
	f := New(4, 3, false)
	fps := f.Fingerprints(tokenStream(40))
	for i := 1; i < len(fps); i++ {
		if fps[i].Start == fps[i-1].Start {
			t.Errorf("consecutive fingerprints must not repeat the same selected index: %v", fps[i])
		}
	}
}

func TestFingerprintsMonotonicStart(t *testing.T) {
	f := New(4, 3, false)
	fps := f.Fingerprints(tokenStream(40))
	for i := 1; i < len(fps); i++ {
		if fps[i].Start <= fps[i-1].Start {
			t.Errorf("expected strictly increasing selection index, got %d then %d", fps[i-1].Start, fps[i].Start)
		}
	}
}

func TestFingerprintsStopIsStartPlusKMinus1(t *testing.T) {
	f := New(5, 4, false)
	for _, fp := range f.Fingerprints(tokenStream(50)) {
		if fp.Stop != fp.Start+f.K-1 {
			t.Errorf("Stop = %d, want %d", fp.Stop, fp.Start+f.K-1)
		}
	}
}

func TestFingerprintsKgramDataPopulatedOnlyWhenRequested(t *testing.T) {
	tokens := tokenStream(30)

	withoutData := New(4, 3, false)
	for _, fp := range withoutData.Fingerprints(tokens) {
		if fp.Data != nil {
			t.Error("expected nil Data when kgramData=false")
		}
	}

	withData := New(4, 3, true)
	for _, fp := range withData.Fingerprints(tokens) {
		if len(fp.Data) != withData.K {
			t.Errorf("expected %d-token data slice, got %d", withData.K, len(fp.Data))
		}
		for i, tok := range fp.Data {
			if tok != tokens[fp.Start+i] {
				t.Errorf("Data[%d] = %q, want %q", i, tok, tokens[fp.Start+i])
			}
		}
	}
}

// TestSharedRunProducesCommonFingerprint verifies the Winnowing guarantee:
// two token streams sharing a contiguous run of at least w+k-1 tokens must
// select at least one common fingerprint hash.
func TestSharedRunProducesCommonFingerprint(t *testing.T) {
	k, w := 5, 4
	shared := tokenStream(k + w - 1 + 6)

	left := append(append([]string{}, tokenStream(8)...), shared...)
	right := append(append([]string{}, tokenStream(3)...), shared...)

	f := New(k, w, false)
	leftFps := f.Fingerprints(left)
	rightFps := f.Fingerprints(right)

	leftHashes := map[uint64]bool{}
	for _, fp := range leftFps {
		leftHashes[fp.Hash] = true
	}
	found := false
	for _, fp := range rightFps {
		if leftHashes[fp.Hash] {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected at least one shared fingerprint hash for a shared run >= w+k-1 tokens long")
	}
}

func TestFingerprintsPartialWindowWhenFewerGramsThanW(t *testing.T) {
	// k=4, w=10, but only 6 tokens -> 3 k-gram hashes, fewer than w.
	f := New(4, 10, false)
	fps := f.Fingerprints(tokenStream(6))
	if len(fps) == 0 {
		t.Fatal("expected at least one fingerprint even when m < w")
	}
}
