package user

// Every read joins the role so responses carry it without a second query.
const (
	userColumns = `u.id, u.identification, u.name, u.last_name, u.email, u.password, u.telephone,
		u.address, u.department, u.municipality, u.id_role, u.created_at, u.updated_at, r.id, r.name`

	SelectUsers = `
		SELECT ` + userColumns + `
		FROM users u
		JOIN roles r ON r.id = u.id_role
		ORDER BY u.id
	`
	SelectUsersByRoles = `
		SELECT ` + userColumns + `
		FROM users u
		JOIN roles r ON r.id = u.id_role
		WHERE u.id_role = ANY($1)
		ORDER BY u.id
	`
	SelectUserByID = `
		SELECT ` + userColumns + `
		FROM users u
		JOIN roles r ON r.id = u.id_role
		WHERE u.id = $1
	`
	SelectUserByEmail = `
		SELECT ` + userColumns + `
		FROM users u
		JOIN roles r ON r.id = u.id_role
		WHERE u.email = $1
	`
	SelectEmailTaken = `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id <> $2)`
	InsertUser       = `
		WITH u AS (
			INSERT INTO users (identification, name, last_name, email, password, telephone,
			                   address, department, municipality, id_role)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING *
		)
		SELECT ` + userColumns + `
		FROM u
		JOIN roles r ON r.id = u.id_role
	`
	UpdateUserByID = `
		WITH u AS (
			UPDATE users
			SET identification = $1,
			    name = $2,
			    last_name = $3,
			    email = $4,
			    password = $5,
			    telephone = $6,
			    address = $7,
			    department = $8,
			    municipality = $9,
			    id_role = $10,
			    updated_at = now()
			WHERE id = $11
			RETURNING *
		)
		SELECT ` + userColumns + `
		FROM u
		JOIN roles r ON r.id = u.id_role
	`
	DeleteUserByID = `DELETE FROM users WHERE id = $1`
)
