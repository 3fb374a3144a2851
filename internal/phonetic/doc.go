// Package phonetic provides the character and segment mappings used to
// transcribe orthographic Welsh into IPA. It converts accented Welsh
// orthography into the ASCII format expected by the Festival speech engine
// and maps Festival's segmentation labels onto IPA symbols.
package phonetic
