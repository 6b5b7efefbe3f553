package bot

// Version is reported by the botinfo command.
const Version = "v1.2.0"

type Color int

const (
	Red     Color = 0xE74C3C
	Orange  Color = 0xE67E22
	Blue    Color = 0x3498DB
	Green   Color = 0x2ECC71
	Blurple Color = 0x5865F2
)

// defaultColor stands in for missing or unparseable embed colors.
const defaultColor = 0x2F3136

// snippetMax caps the content snippet length in audit records.
const snippetMax = 200

const timestampLayout = "2006-01-02 15:04:05 UTC"
