package mcpserver

// AttachmentLayoutContract describes where relocated attachments end up and
// how notes should reference them. Exposed to LLM consumers as a resource.
const AttachmentLayoutContract = `# Othala Attachment Layout Contract

The relocate_embeds tool gathers the files a note embeds into a folder of
the note's own, next to it.

## Layout

` + "```" + `
journal/
  Trip.md                  <- the note
  Trip/                    <- its attachment folder (note name without .md)
    photo.png
    map.pdf
` + "```" + `

## Rules

1. **Embeds** use the ` + "`" + `![[target]]` + "`" + ` syntax, optionally with a display
   alias: ` + "`" + `![[target|alias]]` + "`" + `. Plain wikilinks ` + "`" + `[[target]]` + "`" + ` are never
   relocation candidates.
2. **Only attachments move.** Markdown embeds (transclusions of other notes)
   and extensionless files stay where they are.
3. **Exclusion.** When the excludeString setting is non-empty, any attachment
   whose path or name contains it (case-insensitive) is skipped. Manage it
   with the get_settings and set_exclude tools.
4. **Idempotent.** Running relocate_embeds twice on the same note is a no-op;
   attachments already in the note's folder are not touched.
5. **Links survive.** When an attachment moves, path-form references to it in
   other notes are rewritten; bare-name references keep resolving as before.
   Note text in the relocated note itself is never rewritten.
6. **Paths** are vault-relative and use forward slashes.
`
