package uipanel_test

import (
	"context"
	"fmt"

	"github.com/BrandonKowalski/uipanel/pkg/uipanel"
	"github.com/BrandonKowalski/uipanel/pkg/uipanel/headless"
)

func Example() {
	ctx := context.Background()
	c := uipanel.NewController(uipanel.ControllerOptions{Name: "main", SettleDelay: -1})

	menu := uipanel.NewPanel(uipanel.PanelConfig{
		Name:     "menu",
		Elements: []uipanel.Element{headless.NewTimedElement("fade", 0, 0)},
		Hooks: uipanel.Hooks{
			OnAllShown:  func() { fmt.Println("menu shown") },
			OnAllHidden: func() { fmt.Println("menu hidden") },
		},
	})
	if err := menu.Init(c); err != nil {
		fmt.Println(err)
		return
	}

	_ = menu.Open(ctx)
	fmt.Println(menu.State(), c.ShowingPanelCount())

	_ = menu.Close(ctx)
	fmt.Println(menu.State(), c.ShowingPanelCount())

	// Output:
	// menu shown
	// opened 1
	// menu hidden
	// closed 0
}

func ExampleController_CloseAllButInit() {
	ctx := context.Background()
	c := uipanel.NewController(uipanel.ControllerOptions{SettleDelay: -1})

	newPanel := func(name string, init bool) *uipanel.Panel {
		p := uipanel.NewPanel(uipanel.PanelConfig{
			Name:          name,
			Elements:      []uipanel.Element{headless.NewTimedElement(name, 0, 0)},
			ShowFromStart: init,
		})
		_ = p.Init(c)
		_ = p.Open(ctx)
		return p
	}

	newPanel("home", true)
	newPanel("inventory", false)
	newPanel("map", false)

	for _, task := range c.CloseAllButInit(ctx) {
		_ = task.Wait(ctx)
	}

	for _, p := range c.Stack() {
		fmt.Println(p.Name(), p.State())
	}

	// Output:
	// home opened
}
