// Package generation provides the boundary between schemadoc and external
// AI/LLM services. The Generator interface turns a Prompt into text, and the
// embedded templates build the two prompts a documentation job needs: one
// asking for a friendly database name, one asking for table documentation.
// Concrete providers live under internal/platform (Gemini).
package generation
