// Package slug builds URL-safe identifiers and resolves collisions.
//
// # Make
//
// Make lowercases its input, keeps ASCII letters and digits, collapses
// every other run of characters into one "-" and trims dashes at both
// ends. Input with nothing usable yields the fallback, "item" unless
// Fallback says otherwise.
//
//	slug.Make("Hello, World!")                 // "hello-world"
//	slug.Make("  Go 1.24 -- release  ")        // "go-1-24-release"
//	slug.Make("!!!")                           // "item"
//	slug.Make("!!!", slug.Fallback("project")) // "project"
//
// # Transliteration
//
// By default non-ASCII letters are separators. Transliterate folds Latin
// diacritics and a few special letters (ß, æ, ø, ł) to ASCII first.
//
//	slug.Make("Café")                       // "caf"
//	slug.Make("Café", slug.Transliterate()) // "cafe"
//	slug.Make("Straße", slug.Transliterate()) // "strasse"
//
// # Unique
//
// Unique returns the candidate when it is free and otherwise the first
// free candidate-2, candidate-3, and so on. Values passed as exclude never
// count as taken, so an item being renamed keeps its own slug.
//
//	slug.Unique([]string{"a", "a-2"}, "a") // "a-3"
//	slug.Unique([]string{"a"}, "a", "a")   // "a"
package slug
