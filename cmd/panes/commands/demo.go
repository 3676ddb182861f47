package commands

import (
	"fmt"
	"strings"

	"github.com/agiangrant/panes/layout"
	"github.com/agiangrant/panes/retained"
)

// demoLayoutName is the file 'panes init' writes the demo to.
const demoLayoutName = "login.toml"

// mustLayout parses a literal layout used by the demo.
func mustLayout(s string) layout.Layout2d {
	l, err := layout.Parse2d(s)
	if err != nil {
		panic(fmt.Sprintf("demo layout %q: %v", s, err))
	}
	return l
}

// buildDemo adds a login form to g. Units are terminal cells.
func buildDemo(g *retained.Gui) {
	title := retained.NewLabel("Sign in")
	title.SetPosition(2, 1)
	g.Add(title, "title")

	username := retained.NewEditBox()
	username.SetDefaultText("user name")
	username.SetMaxChars(32)
	username.SetPositionLayout(mustLayout("(2, title.bottom + 1)"))
	username.SetSizeLayout(mustLayout("(min(parent.width - 4, 40), 3)"))
	g.Add(username, "username")

	password := retained.NewEditBox()
	password.SetDefaultText("password")
	password.SetPasswordChar('*')
	password.SetMaxChars(32)
	password.SetPositionLayout(mustLayout("(2, username.bottom)"))
	password.SetSizeLayout(mustLayout("(username.width, 3)"))
	g.Add(password, "password")

	remember := retained.NewCheckBox("Remember me")
	remember.SetPositionLayout(mustLayout("(2, password.bottom + 1)"))
	remember.SetSize(20, 1)
	g.Add(remember, "remember")

	login := retained.NewButton("Log in")
	login.SetPositionLayout(mustLayout("(2, remember.bottom + 1)"))
	g.Add(login, "login")

	status := retained.NewLabel("Tab moves between fields, Esc quits")
	status.SetPositionLayout(mustLayout("(2, login.bottom + 1)"))
	g.Add(status, "status")
}

// bindDemo wires the login form's handlers. It looks widgets up by name so it
// also works on a form loaded from login.toml.
func bindDemo(g *retained.Gui) {
	c := g.Container()
	username, ok1 := retained.Get[*retained.EditBox](c, "username")
	password, ok2 := retained.Get[*retained.EditBox](c, "password")
	login, ok3 := retained.Get[*retained.Button](c, "login")
	status, ok4 := retained.Get[*retained.Label](c, "status")
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return
	}

	submit := func(retained.Signal) {
		status.SetText(loginMessage(username.Text(), password.Text()))
	}
	login.Bind(retained.SignalPressed, submit)
	password.Bind(retained.SignalReturnKeyPressed, submit)
	username.Bind(retained.SignalReturnKeyPressed, func(retained.Signal) {
		password.Focus()
	})
}

func loginMessage(user, password string) string {
	user = strings.TrimSpace(user)
	switch {
	case user == "":
		return "Enter a user name"
	case password == "":
		return "Enter a password"
	}
	return "Welcome, " + user
}
