// Package harness runs conformance cases against the full conversion
// pipeline.
//
// A case is a YAML file naming an icon source (inline or a file next to
// the case) and the outcome expected from converting it: an error kind,
// the generated package and file name, fragments the output must contain,
// lint codes, and optionally a golden file the output must match byte for
// byte.
//
// Each case runs through a fresh engine with a fixed run token and a
// deterministic clock, recording into an in-memory store, so the same
// case always produces the same artifact.
//
// Example case:
//
//	name: filled_menu
//	icon: Menu
//	theme: filled
//	source: |
//	  <vector xmlns:android="http://schemas.android.com/apk/res/android">
//	    <path android:pathData="M3,18h18v-2H3v2z"/>
//	  </vector>
//	expect:
//	  package: androidx.compose.material.icons.filled
//	  file_name: Menu.kt
//	  contains:
//	    - "moveTo(3.0f, 18.0f)"
//	golden: ../golden/filled_menu.golden
package harness
