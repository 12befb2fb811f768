package models

import "strconv"

// Address is the postal address of a remote user.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	Zipcode string `json:"zipcode,omitempty"`
}

// Company is the employer of a remote user.
type Company struct {
	Name        string `json:"name"`
	CatchPhrase string `json:"catchPhrase,omitempty"`
	BS          string `json:"bs,omitempty"`
}

// User is a read-only author record sourced from the remote API.
type User struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone,omitempty"`
	Website  string  `json:"website,omitempty"`
	Address  Address `json:"address"`
	Company  Company `json:"company"`
}

// DefaultUser synthesizes the placeholder author used when the remote lookup fails,
// so every post resolves to some user.
func DefaultUser(id int) User {
	sid := strconv.Itoa(id)
	return User{
		ID:       id,
		Name:     "User " + sid,
		Username: "user" + sid,
		Email:    "user" + sid + "@example.com",
		Address:  Address{Street: "Unknown", City: "Unknown"},
		Company:  Company{Name: "Unknown"},
	}
}
