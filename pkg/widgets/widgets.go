// Package widgets provides the built-in displayable constructors and the
// catalog that maps widget names in screen documents to a constructor
// plus its node configuration.
package widgets

import (
	"fmt"
	"sort"

	"github.com/Jjop12/renpy/pkg/sl"
	"github.com/Jjop12/renpy/pkg/vdom"
)

// Entry describes one widget available to screen documents.
type Entry struct {
	Construct sl.Constructor
	Config    sl.DisplayableConfig
}

// imagemapPusher is what a constructor needs from the imagemap stack to
// register a new imagemap; satisfied by screen.Instance.
type imagemapPusher interface {
	Push(v any)
}

// imagemapTop exposes the innermost imagemap to hotspot constructors.
type imagemapTop interface {
	Imagemap() (any, bool)
}

// container builds a widget that takes no positional arguments.
func container(tag string) sl.Constructor {
	return func(args []any, kw sl.Props) (sl.Element, error) {
		if len(args) > 0 {
			return nil, fmt.Errorf("%s takes no positional arguments, got %d", tag, len(args))
		}
		return vdom.NewWidget(tag, vdom.Props(kw)), nil
	}
}

// textual builds a widget around exactly one positional text argument.
func textual(tag string) sl.Constructor {
	return func(args []any, kw sl.Props) (sl.Element, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%s takes one positional argument, got %d", tag, len(args))
		}
		node := vdom.NewWidget(tag, vdom.Props(kw))
		node.Add(vdom.NewText(fmt.Sprint(args[0])))
		return node, nil
	}
}

// image builds a widget referencing one image by name.
func image(tag string) sl.Constructor {
	return func(args []any, kw sl.Props) (sl.Element, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%s takes one positional argument, got %d", tag, len(args))
		}
		props := vdom.Props(kw)
		props["image"] = args[0]
		return vdom.NewWidget(tag, props), nil
	}
}

// imagemapConstruct builds an imagemap and pushes it onto the context's
// imagemap stack; the node pops it when execution of the subtree ends.
func imagemapConstruct(args []any, kw sl.Props) (sl.Element, error) {
	ctx, rest, err := popContext("imagemap", args)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("imagemap takes no positional arguments, got %d", len(rest))
	}
	node := vdom.NewWidget("imagemap", vdom.Props(kw))
	pusher, ok := ctx.Imagemaps.(imagemapPusher)
	if !ok {
		return nil, fmt.Errorf("imagemap requires an imagemap stack")
	}
	pusher.Push(node)
	return node, nil
}

// hotspotConstruct builds a hotspot inside the innermost imagemap.
func hotspotConstruct(args []any, kw sl.Props) (sl.Element, error) {
	ctx, rest, err := popContext("hotspot", args)
	if err != nil {
		return nil, err
	}
	if len(rest) != 1 {
		return nil, fmt.Errorf("hotspot takes one positional argument, got %d", len(rest))
	}
	top, ok := ctx.Imagemaps.(imagemapTop)
	if !ok {
		return nil, fmt.Errorf("hotspot requires an imagemap stack")
	}
	if _, inside := top.Imagemap(); !inside {
		return nil, fmt.Errorf("hotspot is not inside an imagemap")
	}
	props := vdom.Props(kw)
	props["area"] = rest[0]
	return vdom.NewWidget("hotspot", props), nil
}

func popContext(tag string, args []any) (*sl.Context, []any, error) {
	if len(args) == 0 {
		return nil, nil, fmt.Errorf("%s: missing context argument", tag)
	}
	ctx, ok := args[0].(*sl.Context)
	if !ok {
		return nil, nil, fmt.Errorf("%s: first argument is %T, not a context", tag, args[0])
	}
	return ctx, args[1:], nil
}

var catalog = map[string]Entry{
	"window": {
		Construct: container("window"),
		Config:    sl.DisplayableConfig{Style: "window", ChildOrFixed: true},
	},
	"frame": {
		Construct: container("frame"),
		Config:    sl.DisplayableConfig{Style: "frame", ChildOrFixed: true},
	},
	"vbox": {
		Construct: container("vbox"),
		Config:    sl.DisplayableConfig{Style: "vbox"},
	},
	"hbox": {
		Construct: container("hbox"),
		Config:    sl.DisplayableConfig{Style: "hbox"},
	},
	"fixed": {
		Construct: container("fixed"),
		Config:    sl.DisplayableConfig{Style: "fixed"},
	},
	"grid": {
		Construct: container("grid"),
		Config:    sl.DisplayableConfig{Style: "grid"},
	},
	"text": {
		Construct: textual("text"),
		Config:    sl.DisplayableConfig{Style: "text", PassScope: true},
	},
	"label": {
		Construct: textual("label"),
		Config:    sl.DisplayableConfig{Style: "label", PassScope: true},
	},
	"textbutton": {
		Construct: textual("textbutton"),
		Config:    sl.DisplayableConfig{Style: "button", PassScope: true, ChildOrFixed: true},
	},
	"imagebutton": {
		Construct: container("imagebutton"),
		Config:    sl.DisplayableConfig{Style: "button", ChildOrFixed: true},
	},
	"image": {
		Construct: image("image"),
		Config:    sl.DisplayableConfig{},
	},
	"bar": {
		Construct: container("bar"),
		Config:    sl.DisplayableConfig{Style: "bar"},
	},
	"imagemap": {
		Construct: imagemapConstruct,
		Config:    sl.DisplayableConfig{Style: "imagemap", PassContext: true, Imagemap: true},
	},
	"hotspot": {
		Construct: hotspotConstruct,
		Config:    sl.DisplayableConfig{Style: "hotspot", PassContext: true, ChildOrFixed: true},
	},
}

// Lookup returns the catalog entry for a widget name.
func Lookup(name string) (Entry, bool) {
	entry, ok := catalog[name]
	return entry, ok
}

// Names returns the catalog's widget names, sorted.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
