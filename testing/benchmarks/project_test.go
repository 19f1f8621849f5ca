package benchmarks

import "github.com/zoobzio/dbml"

func benchProject() *dbml.Project {
	project := dbml.NewProject("bench")

	mod := dbml.NewTable("mod")
	mod.AddColumn(dbml.NewColumn("mod_id", "uuid"))
	mod.AddColumn(dbml.NewColumn("gb_mod_id", "integer"))
	mod.AddColumn(dbml.NewColumn("game_id", "uuid"))
	mod.AddColumn(dbml.NewColumn("name", "varchar"))
	mod.AddColumn(dbml.NewColumn("enabled", "boolean"))
	project.AddTable(mod)

	return project
}
