package rbac

// RolePermissions is the default policy. Parents manage the app; players
// only play and read their own progress.
var RolePermissions = map[string][]string{
	"player": {
		"topic:view",
		"quiz:*",
		"check:*",
		"stats:view-own",
		"progress:*",
		"leaderboard:view",
	},
	"parent": {"*"},
}
