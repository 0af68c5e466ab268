package sys

const (
	// --- Infrastructure & Lifecycle ---
	MsgConfigFailedToLoad  = "Failed to load config: %v"
	MsgConfigMissing       = "%s is not set in the environment or .env file"
	MsgDatabaseInitSuccess = "Database initialized successfully"
	MsgDatabaseTableError  = "Failed to create table: %w"
	MsgDatabasePragmaError = "Failed to set pragma %s: %w"
	MsgDaemonStarting      = "Starting..."
	MsgBotStarting         = "Starting %s..."
	MsgBotReady            = "%s is ready! (ID: %s) (PID: %d) (Took: %dms)"
	MsgBotShutdown         = "Shutting down %s..."
	MsgBotKillingOld       = "Killing running instance... (PID: %d)"
	MsgBotOldTerminated    = "Old instance terminated."
	MsgBotStubborn         = "Old process %d is stubborn. Sending SIGKILL..."
	MsgBotRegisterFail     = "Command registration failed: %v"
	MsgGenericError        = "%v"
	MsgNaturalTimeInitFail = "Failed to initialize natural time parser: %v"

	// --- Storage ---
	MsgStoreEnsureFail = "Failed to prepare %s: %v"
	MsgStoreReadFail   = "Failed to read %s, treating as empty: %v"
	MsgStoreParseFail  = "Malformed JSON in %s, treating as empty: %v"

	// --- Command Loader & Registry ---
	MsgLoaderSyncCommands   = "Syncing commands for guild %s..."
	MsgLoaderUpToDate       = "Commands are up to date. (Hash: %s)"
	MsgLoaderRegistered     = "Registered: %s"
	MsgLoaderRegisterFail   = "Guild registration failed: %w"
	MsgLoaderCleanup        = "Removing commands from previous guild: %s"
	MsgLoaderSkipped        = "Skipping command registration as requested."
	MsgLoaderPanicRecovered = "Panic recovered in handler: %v"

	// --- Troll System ---
	MsgTrollStarted         = "Started trolling %s until %s (every ~%s)"
	MsgTrollStopped         = "Stopped trolling %s"
	MsgTrollExpired         = "Session for %s reached its end time"
	MsgTrollStoppedAll      = "Stopped %d troll session(s)"
	MsgTrollResumed         = "Resumed %d troll session(s)"
	MsgTrollPruned          = "Pruned %d expired troll session(s)"
	MsgTrollSendFail        = "Failed to send ghost ping for %s in %s: %v"
	MsgTrollDeleteFail      = "Failed to delete ghost ping %s in %s: %v"
	MsgTrollNoChannels      = "No postable channels for %s, skipping tick"
	MsgTrollStoreFail       = "Failed to update troll store for %s: %v"
	MsgTrollHistoryFail     = "Failed to record troll event: %v"
	MsgTrollManagerShutdown = "Shutting down Troll Manager..."
	MsgTrollResumeFail      = "Failed to resume troll sessions: %v"

	// --- Presence ---
	MsgPresenceUpdateFail = "Failed to update presence: %v"
	MsgPresenceRotated    = "Presence set to: %s (Next: %s)"
	MsgPresenceTrolling   = "Trolling %d member(s)"
	MsgPresenceUptime     = "Uptime: %dh %dm"

	// --- Access System ---
	MsgAccessRoleAdded   = "Role %s added to the allow-list by %s"
	MsgAccessRoleRemoved = "Role %s removed from the allow-list by %s"
	MsgAccessDenied      = "Denied /%s for user %s"

	// --- User-visible Titles & Text ---
	MsgTitlePermissionDenied = "Permission Denied"
	MsgTitleInvalidArgument  = "Invalid Argument"
	MsgTitleFailure          = "Something Went Wrong"
	MsgTitleTrollStarted     = "Trolling Started"
	MsgTitleTrollStopped     = "Trolling Stopped"
	MsgTitleTrollCleared     = "All Trolling Stopped"
	MsgTitleNoActiveTrolls   = "No Active Trolls"
	MsgTitleActiveTrolls     = "Active Trolls"
	MsgTitleTrollHistory     = "Troll History"
	MsgTitleRoleAdded        = "Role Added"
	MsgTitleRoleRemoved      = "Role Removed"
	MsgTitleRoleNotFound     = "Role Not Found"
	MsgTitleAllowedRoles     = "Allowed Roles"

	ErrPermissionDenied      = "You do not have permission to use this command."
	ErrManagerOnly           = "You need Administrator permissions to use this command."
	ErrGenericFailure        = "Something went wrong while running this command. Please try again."
	ErrGuildOnly             = "This command can only be used in a server."
	ErrTrollTargetBot        = "Bots cannot be trolled."
	ErrTrollUntilParse       = "Failed to parse `until`. Try formats like 'in 2 hours' or 'tomorrow at 9am'."
	ErrTrollUntilPast        = "`until` must be in the future."
	ErrTrollDurationRange    = "Duration must be between %d and %d minutes."
	ErrTrollFrequencyRange   = "Ping frequency must be between %d and %d seconds."
	ErrTrollDurationRequired = "Provide either `duration` or `until`."

	MsgTrollStartedDisp    = "Now trolling <@%s> for %d minute(s).\nPing frequency: ~%d seconds."
	MsgTrollStoppedDisp    = "Stopped trolling <@%s>."
	MsgTrollClearedDisp    = "Stopped **%d** troll session(s)."
	MsgTrollNoActiveDisp   = "There are no active trolls at the moment."
	MsgTrollActiveHeader   = "There are %d active troll(s):\n\n"
	MsgTrollActiveItem     = "> <@%s> - %d minute(s) left (ends <t:%d:R>)\n"
	MsgTrollHistoryEmpty   = "Nothing has been recorded yet."
	MsgTrollHistoryItem    = "> <t:%d:f> **%s** <@%s>%s%s\n"
	MsgTrollStopButton     = "Stop Trolling"
	MsgRoleAddedDisp       = "<@&%s> can now use the troll commands."
	MsgRoleAlreadyDisp     = "<@&%s> was already allowed to use the troll commands."
	MsgRoleRemovedDisp     = "<@&%s> has been removed from the list of allowed roles."
	MsgRoleNotFoundDisp    = "<@&%s> is not in the list of allowed roles."
	MsgAllowedRolesEmpty   = "No roles are allowed yet. Administrators can add one with `/access add`."
	MsgAllowedRolesItem    = "> <@&%s>\n"
	MsgPingPinging         = "🏓 Pinging..."
	MsgPingResult          = "# Pong! 🏓\n\n> **Latency:** %dms\n> **Gateway:** %dms"
	MsgCommandFailed       = "Command /%s failed: %v"
	MsgRespondError        = "Failed to respond to interaction: %v"
	MsgUnknownSubcommand   = "Unknown %s subcommand: %s"
	MsgTrollHistoryByActor = " by <@%s>"
	MsgTrollHistoryMinutes = " (%d min)"
	MsgTrollHistoryAll     = "> <t:%d:f> **%s** all sessions%s\n"
	MsgTitleTrollAlready   = "Not Trolling"
	MsgTrollNotRunningDisp = "<@%s> is not being trolled."
	MsgPingRefresh         = "🔄 Refresh"
	MsgTrollEndsDisp       = "\nEnds <t:%d:R>."
	MsgTitleHelp           = "👻 Ghost Commands"
	MsgHelpBody            = "`/troll start` - Start ghost-pinging a member\n" +
		"`/troll stop` - Stop ghost-pinging a member\n" +
		"`/troll status` - List active sessions\n" +
		"`/troll history` - Show the latest troll events\n" +
		"`/troll clear` - Stop every session (Admin Only)\n" +
		"`/access add|remove|list` - Manage allowed roles (Admin Only)\n" +
		"`/ping` - Check bot latency\n" +
		"`/help` - Show this message"
)
