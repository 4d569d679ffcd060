package sql

import (
	"embed"
)

//go:embed queries/find_patient.sql
var FindPatient string

//go:embed queries/fetch_patient.sql
var FetchPatient string

//go:embed queries/insert_patient.sql
var InsertPatient string

//go:embed queries/update_patient.sql
var UpdatePatient string

// Migrations holds the schema migration files, applied in filename order.
//
//go:embed migrations
var Migrations embed.FS
