// Package exporter renders student results as downloadable CSV. Output is
// tuned for Excel: UTF-8 BOM, semicolon delimiter and decimal comma by
// default, matching how the source spreadsheets are authored.
package exporter
