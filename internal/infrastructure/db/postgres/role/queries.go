package role

const SelectRoleExists = `SELECT EXISTS (SELECT 1 FROM roles WHERE id = $1)`
