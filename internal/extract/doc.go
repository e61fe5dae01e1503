// Package extract parses HTML snippet files and collects image references.
//
// The input is free text containing <img>-like fragments, one or more per
// file. Extraction is line-oriented: each line is matched independently for
// an <img> tag carrying both a name="..." and a src="..." attribute. Files
// are read as UTF-8 with a one-shot Windows-1251 fallback for legacy input.
package extract
