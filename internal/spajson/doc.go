// Package spajson converts the comment-annotated default dump printed by
// pw-config into a flat JSON object.
//
// Packaged templates document their defaults as commented assignments such as
//
//	#channelmix.upmix-method = psd # none, simple
//
// Parse keeps every line of that shape, infers the value type, and recovers
// the enumerated alternatives from the trailing comment. Everything else in
// the dump is ignored, so the outer envelope pw-config prints around a
// section does not need to be understood.
package spajson
