// Package token defines lexical token kinds and trivia for the JavaScript
// subset the reprinter understands.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - Whitespace, line breaks and comments never appear in the token stream;
//     they are attached to the following token as Leading trivia.
//   - Keywords are case sensitive.
package token
