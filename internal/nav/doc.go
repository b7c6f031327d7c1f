// Package nav resolves reading positions in an ebook from its table of
// contents, landmarks and spine.
//
// Navigation metadata is treated as unreliable: every lookup falls back to
// a weaker source instead of failing. Rendering is left to a Renderer.
package nav
