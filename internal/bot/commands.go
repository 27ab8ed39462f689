package bot

// Command constants for Telegram bot commands.
const (
	CommandStart       = "/start"
	CommandNext        = "/next"
	CommandToday       = "/today"
	CommandSetLocation = "/setlocation"
	CommandAbout       = "/about"
)
