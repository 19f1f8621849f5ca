// Package unverdad builds parameterized SQL WHERE conditions.
//
// Conditions are trees. A Leaf joins column comparisons with a single
// logic operator; a Branch joins leaves and nested branches. Every value
// becomes a named placeholder of the form {prefix}{column}__{n}, and all
// placeholders of one tree come from a shared Namespace, so they never
// collide no matter how deep the tree grows.
//
// # Basic Usage
//
//	filter := unverdad.MustBranch(unverdad.AND)
//
//	mods := filter.MustAddLeaf("m", unverdad.OR)
//	mods.MustAdd("name", "sol_skin", unverdad.EQ)
//	mods.MustAdd("name", "ky_skin", unverdad.EQ)
//
//	filter.MustAddLeaf("", unverdad.AND).MustAdd("game_path", nil, unverdad.NE)
//
//	query := "SELECT * FROM mod m " + unverdad.Where(filter)
//	// WHERE ((m.name = :m_name__0 OR m.name = :m_name__1) AND (game_path IS NOT NULL))
//	params := filter.Params()
//	// m_name__0 = "sol_skin", m_name__1 = "ky_skin"
//
// # NULL Comparisons
//
// A nil value, or a nil pointer, renders IS NULL with EQ and IS NOT NULL
// with NE and binds nothing. Any other operator returns an
// InvalidOperatorError.
//
// # Schema-Validated Usage
//
// A Schema built from a DBML project checks values against column types:
//
//	schema, err := unverdad.NewSchema(project)
//	if err != nil {
//		return err
//	}
//	leaf, err := schema.Leaf(filter, "mod", "m", unverdad.AND)
//	if err != nil {
//		return err
//	}
//	err = leaf.Add("enabled", "yes", unverdad.EQ) // ValidationError
//
// # Output Format
//
// Rendered conditions use named parameters (:name). The dialect packages
// (sqlite, postgres, mariadb, mssql) rewrite them into the driver's
// placeholder style.
package unverdad
