package matchmigrations

import "github.com/uptrace/bun/migrate"

var Migrations = migrate.NewMigrations()

func init() {
	// Migration ids are derived from the caller file name.
	if err := Migrations.DiscoverCaller(); err != nil {
		panic(err)
	}
}
