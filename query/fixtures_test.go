package query_test

import (
	"database/sql"

	"github.com/soyesenna/helix-query-sub000/criteria"
)

// user/department/order mirror the fixtures the criteria and session
// packages already test against, extended with a to-many relation (orders)
// so the fetch-join/two-phase-pagination tests have something to exercise.
type user struct {
	ID   int64
	Name string
	Age  int
}

type order struct {
	ID     int64
	UserID int64
	Total  int
}

type userMapper struct{}

func (userMapper) Table() string     { return "users" }
func (userMapper) Columns() []string { return []string{"id", "name", "age"} }
func (userMapper) IDColumn() string  { return "id" }
func (userMapper) ID(u *user) any {
	if u.ID == 0 {
		return nil
	}
	return u.ID
}
func (userMapper) SetID(u *user, id any) { u.ID = id.(int64) }
func (userMapper) Values(u *user) []any  { return []any{u.ID, u.Name, u.Age} }
func (userMapper) Scan(rows *sql.Rows) (*user, error) {
	u := &user{}
	if err := rows.Scan(&u.ID, &u.Name, &u.Age); err != nil {
		return nil, err
	}
	return u, nil
}

type orderMapper struct{}

func (orderMapper) Table() string     { return "orders" }
func (orderMapper) Columns() []string { return []string{"id", "user_id", "total"} }
func (orderMapper) IDColumn() string  { return "id" }
func (orderMapper) ID(o *order) any {
	if o.ID == 0 {
		return nil
	}
	return o.ID
}
func (orderMapper) SetID(o *order, id any) { o.ID = id.(int64) }
func (orderMapper) Values(o *order) []any  { return []any{o.ID, o.UserID, o.Total} }
func (orderMapper) Scan(rows *sql.Rows) (*order, error) {
	o := &order{}
	if err := rows.Scan(&o.ID, &o.UserID, &o.Total); err != nil {
		return nil, err
	}
	return o, nil
}

type userSchema struct{}

func (userSchema) Table() string { return "users" }
func (userSchema) Column(attr string) (string, bool) {
	switch attr {
	case "id":
		return "id", true
	case "name", "department.name":
		return "name", true
	case "age":
		return "age", true
	}
	return "", false
}
func (userSchema) Relation(attr string) (criteria.RelationMeta, criteria.Schema, bool) {
	switch attr {
	case "department":
		return criteria.RelationMeta{Table: "departments", ForeignKey: "department_id", TargetColumn: "id"}, departmentSchema{}, true
	case "orders":
		return criteria.RelationMeta{Table: "orders", ForeignKey: "id", TargetColumn: "user_id", Collection: true}, orderSchema{}, true
	}
	return criteria.RelationMeta{}, nil, false
}

type departmentSchema struct{}

func (departmentSchema) Table() string { return "departments" }
func (departmentSchema) Column(attr string) (string, bool) {
	if attr == "name" {
		return "name", true
	}
	return "", false
}
func (departmentSchema) Relation(string) (criteria.RelationMeta, criteria.Schema, bool) {
	return criteria.RelationMeta{}, nil, false
}

type orderSchema struct{}

func (orderSchema) Table() string { return "orders" }
func (orderSchema) Column(attr string) (string, bool) {
	switch attr {
	case "id", "total":
		return attr, true
	}
	return "", false
}
func (orderSchema) Relation(string) (criteria.RelationMeta, criteria.Schema, bool) {
	return criteria.RelationMeta{}, nil, false
}
