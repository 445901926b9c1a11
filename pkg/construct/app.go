package construct

// App is the root of a construct tree. Stacks are created beneath it and
// resources beneath stacks; synthesis starts from here.
type App struct {
	node *Node
	ctx  Context
}

// NewApp creates a tree root. The name defaults to "App" and becomes the
// root path segment, so it is validated like any other construct id. The
// context supplies default location and tags to every stack and resource
// that does not set its own.
func NewApp(name string, ctx Context) (*App, error) {
	if name == "" {
		name = "App"
	}
	app := &App{ctx: ctx}
	node, err := NewNode(nil, name, app)
	if err != nil {
		return nil, err
	}
	app.node = node
	return app, nil
}

func (a *App) Node() *Node { return a.node }

func (a *App) Context() Context { return a.ctx }
