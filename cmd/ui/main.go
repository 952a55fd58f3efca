package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"gioui.org/app"
	"gioui.org/font"
	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"taskdesk/internal/backend"
	"taskdesk/internal/config"
	"taskdesk/internal/display"
	"taskdesk/pkg/task"
)

var theme *material.Theme

var (
	grey   = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}
	red    = color.NRGBA{R: 0xFF, G: 0x40, B: 0x40, A: 0xFF}
	orange = color.NRGBA{R: 0xFF, G: 0xA0, B: 0x00, A: 0xFF}
	blue   = color.NRGBA{R: 0x00, G: 0xA0, B: 0xFF, A: 0xFF}
	green  = color.NRGBA{R: 0x00, G: 0xC0, B: 0x00, A: 0xFF}
)

var filterLabels = map[task.Filter]string{
	task.FilterAll:       "All Tasks",
	task.FilterHigh:      "High Priority",
	task.FilterToday:     "Due Today",
	task.FilterOverdue:   "Overdue",
	task.FilterCompleted: "Completed",
}

type UI struct {
	tasks     *task.Collection
	exportDir string

	query task.Query
	view  []task.Task // rows as last laid out; row buttons index into this
	msg   string

	// Sidebar
	filterBtn [5]widget.Clickable
	exportBtn widget.Clickable

	// Toolbar
	searchEditor widget.Editor
	sortBtn      [4]widget.Clickable

	// Add form
	titleEditor    widget.Editor
	dueEditor      widget.Editor
	categoryEditor widget.Editor
	priorityBtn    widget.Clickable
	newPriority    task.Priority
	addBtn         widget.Clickable

	// Rows
	taskList  widget.List
	toggleBtn []widget.Clickable
	editBtn   []widget.Clickable
	deleteBtn []widget.Clickable

	// Delete confirmation
	deletingID    int
	confirmDelBtn widget.Clickable
	cancelDelBtn  widget.Clickable

	// Edit panel
	editingID       int
	editTitle       widget.Editor
	editDue         widget.Editor
	editCategory    widget.Editor
	editPriority    task.Priority
	editStatus      task.Status
	editPriorityBtn widget.Clickable
	editStatusBtn   widget.Clickable
	saveEditBtn     widget.Clickable
	cancelEditBtn   widget.Clickable
}

func main() {
	cfgPath := flag.String("config", "", "config file (default ~/.taskdesk/config.yaml)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("ui: %v", err)
	}

	bus := task.NewBus()
	tasks, kv, err := backend.OpenCollection(context.Background(), cfg.Store, task.WithBus(bus))
	if err != nil {
		log.Fatalf("ui: open store: %v", err)
	}

	theme = material.NewTheme()
	theme.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
	theme.Palette.Bg = color.NRGBA{R: 0x12, G: 0x12, B: 0x12, A: 0xFF}
	theme.Palette.Fg = color.NRGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}
	theme.Palette.ContrastBg = color.NRGBA{R: 0x30, G: 0x60, B: 0xA0, A: 0xFF}
	theme.Palette.ContrastFg = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

	ui := &UI{
		tasks:       tasks,
		exportDir:   cfg.Export.Dir,
		query:       task.Query{Filter: task.FilterAll, Sort: task.SortDate},
		newPriority: task.Medium,
	}
	ui.taskList.Axis = layout.Vertical
	ui.searchEditor.SingleLine = true
	ui.titleEditor.SingleLine = true
	ui.titleEditor.Submit = true
	ui.dueEditor.SingleLine = true
	ui.categoryEditor.SingleLine = true
	ui.editTitle.SingleLine = true
	ui.editDue.SingleLine = true
	ui.editCategory.SingleLine = true
	ui.resetForm()

	go func() {
		w := new(app.Window)
		w.Option(app.Title("taskdesk"))
		w.Option(app.Size(unit.Dp(1100), unit.Dp(760)))

		changes := bus.Subscribe()
		go func() {
			for range changes {
				w.Invalidate()
			}
		}()

		err := ui.run(w)
		bus.Unsubscribe(changes)
		kv.Close()
		if err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func (ui *UI) run(w *app.Window) error {
	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			ui.handleEvents(gtx)
			ui.layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func (ui *UI) resetForm() {
	ui.titleEditor.SetText("")
	ui.dueEditor.SetText(ui.tasks.Today())
	ui.categoryEditor.SetText("Work")
	ui.newPriority = task.Medium
}

// report shows err in the message line and logs anything that isn't a
// validation or not-found outcome.
func (ui *UI) report(err error) {
	if err == nil {
		ui.msg = ""
		if perr := ui.tasks.PersistErr(); perr != nil {
			ui.msg = "Changes kept for this session but not saved: " + perr.Error()
		}
		return
	}
	ui.msg = err.Error()
	if !errors.Is(err, task.ErrValidation) && !errors.Is(err, task.ErrNotFound) {
		log.Printf("ui: %v", err)
	}
}

func (ui *UI) handleEvents(gtx layout.Context) {
	ctx := context.Background()

	for i, f := range task.Filters {
		if ui.filterBtn[i].Clicked(gtx) {
			ui.query.Filter = f
		}
	}
	for i, k := range task.SortKeys {
		if ui.sortBtn[i].Clicked(gtx) {
			ui.query.Sort = k
		}
	}
	ui.query.Search = ui.searchEditor.Text()

	if ui.priorityBtn.Clicked(gtx) {
		ui.newPriority = nextPriority(ui.newPriority)
	}
	submitted := false
	for {
		ev, ok := ui.titleEditor.Update(gtx)
		if !ok {
			break
		}
		if _, ok := ev.(widget.SubmitEvent); ok {
			submitted = true
		}
	}
	if ui.addBtn.Clicked(gtx) || submitted {
		_, err := ui.tasks.Add(ctx, task.Draft{
			Title:    ui.titleEditor.Text(),
			Priority: ui.newPriority,
			DueDate:  ui.dueEditor.Text(),
			Category: ui.categoryEditor.Text(),
		})
		ui.report(err)
		if err == nil {
			ui.resetForm()
		}
	}

	for i := range ui.toggleBtn {
		if i < len(ui.view) && ui.toggleBtn[i].Clicked(gtx) {
			_, err := ui.tasks.ToggleComplete(ctx, ui.view[i].ID)
			ui.report(err)
		}
	}
	for i := range ui.editBtn {
		if i < len(ui.view) && ui.editBtn[i].Clicked(gtx) {
			ui.openEdit(ui.view[i])
		}
	}
	for i := range ui.deleteBtn {
		if i < len(ui.view) && ui.deleteBtn[i].Clicked(gtx) {
			ui.deletingID = ui.view[i].ID
		}
	}

	if ui.confirmDelBtn.Clicked(gtx) && ui.deletingID != 0 {
		ui.report(ui.tasks.Remove(ctx, ui.deletingID))
		ui.deletingID = 0
	}
	if ui.cancelDelBtn.Clicked(gtx) {
		ui.deletingID = 0
	}

	if ui.editPriorityBtn.Clicked(gtx) {
		ui.editPriority = nextPriority(ui.editPriority)
	}
	if ui.editStatusBtn.Clicked(gtx) {
		ui.editStatus = nextStatus(ui.editStatus)
	}
	if ui.saveEditBtn.Clicked(gtx) && ui.editingID != 0 {
		title, due, category := ui.editTitle.Text(), ui.editDue.Text(), ui.editCategory.Text()
		_, err := ui.tasks.Edit(ctx, ui.editingID, task.Patch{
			Title:    &title,
			Priority: &ui.editPriority,
			DueDate:  &due,
			Category: &category,
			Status:   &ui.editStatus,
		})
		ui.report(err)
		if err == nil || errors.Is(err, task.ErrNotFound) {
			ui.editingID = 0
		}
	}
	if ui.cancelEditBtn.Clicked(gtx) {
		ui.editingID = 0
	}

	if ui.exportBtn.Clicked(gtx) {
		ui.export()
	}
}

func (ui *UI) openEdit(t task.Task) {
	ui.editingID = t.ID
	ui.editTitle.SetText(t.Title)
	ui.editDue.SetText(t.DueDate)
	ui.editCategory.SetText(t.Category)
	ui.editPriority = t.Priority
	ui.editStatus = t.Status
}

func (ui *UI) export() {
	path := filepath.Join(ui.exportDir, task.ExportFilename(ui.tasks.Now()))
	if err := os.WriteFile(path, []byte(ui.tasks.CSV()), 0o644); err != nil {
		ui.report(fmt.Errorf("export: %w", err))
		return
	}
	ui.msg = "Exported to " + path
}

func nextPriority(p task.Priority) task.Priority {
	switch p {
	case task.High:
		return task.Low
	case task.Low:
		return task.Medium
	default:
		return task.High
	}
}

func nextStatus(s task.Status) task.Status {
	switch s {
	case task.Pending:
		return task.InProgress
	case task.InProgress:
		return task.Completed
	default:
		return task.Pending
	}
}

func (ui *UI) layout(gtx layout.Context) layout.Dimensions {
	ui.view = ui.tasks.Query(ui.query)
	for len(ui.toggleBtn) < len(ui.view) {
		ui.toggleBtn = append(ui.toggleBtn, widget.Clickable{})
		ui.editBtn = append(ui.editBtn, widget.Clickable{})
		ui.deleteBtn = append(ui.deleteBtn, widget.Clickable{})
	}

	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return ui.layoutNav(gtx)
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.Inset{Top: unit.Dp(16), Right: unit.Dp(16), Bottom: unit.Dp(16), Left: unit.Dp(16)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return ui.layoutMain(gtx)
			})
		}),
	)
}

func (ui *UI) layoutNav(gtx layout.Context) layout.Dimensions {
	stats := ui.tasks.Stats()
	gtx.Constraints.Min.X = gtx.Dp(unit.Dp(200))
	gtx.Constraints.Max.X = gtx.Dp(unit.Dp(200))

	children := []layout.FlexChild{
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Inset{Top: unit.Dp(16), Bottom: unit.Dp(8), Left: unit.Dp(12)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				label := material.H6(theme, "taskdesk")
				label.Color = theme.Palette.ContrastFg
				return label.Layout(gtx)
			})
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Inset{Left: unit.Dp(12), Bottom: unit.Dp(12)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return material.Caption(theme, ui.tasks.Now().Format("Monday, January 2, 2006")).Layout(gtx)
			})
		}),
	}
	for i, f := range task.Filters {
		children = append(children, layout.Rigid(navBtn(theme, &ui.filterBtn[i], filterLabels[f], ui.query.Filter == f)))
	}
	children = append(children,
		layout.Rigid(layout.Spacer{Height: unit.Dp(16)}.Layout),
		layout.Rigid(statLine(fmt.Sprintf("Total: %d", stats.Total))),
		layout.Rigid(statLine(fmt.Sprintf("Pending: %d", stats.Pending))),
		layout.Rigid(statLine(fmt.Sprintf("Completed: %d", stats.Completed))),
		layout.Rigid(statLine(fmt.Sprintf("Overdue: %d", stats.Overdue))),
		layout.Rigid(statLine(fmt.Sprintf("%d%% Complete", stats.Progress))),
		layout.Rigid(layout.Spacer{Height: unit.Dp(16)}.Layout),
		layout.Rigid(navBtn(theme, &ui.exportBtn, "Export CSV", false)),
	)
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
}

func navBtn(th *material.Theme, btn *widget.Clickable, label string, active bool) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		return layout.Inset{Top: unit.Dp(2), Bottom: unit.Dp(2), Left: unit.Dp(8), Right: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			b := material.Button(th, btn, label)
			if active {
				b.Background = th.Palette.ContrastBg
			} else {
				b.Background = color.NRGBA{A: 0}
			}
			b.Color = th.Palette.Fg
			return b.Layout(gtx)
		})
	}
}

func statLine(s string) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		return layout.Inset{Left: unit.Dp(12), Bottom: unit.Dp(2)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return material.Body2(theme, s).Layout(gtx)
		})
	}
}

func (ui *UI) layoutMain(gtx layout.Context) layout.Dimensions {
	children := []layout.FlexChild{
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return material.H5(theme, filterLabels[ui.query.Filter]).Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
		layout.Rigid(ui.layoutAddForm),
		layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
		layout.Rigid(ui.layoutToolbar),
	}
	if ui.msg != "" {
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			label := material.Body2(theme, ui.msg)
			label.Color = orange
			return layout.Inset{Top: unit.Dp(4)}.Layout(gtx, label.Layout)
		}))
	}
	if ui.deletingID != 0 {
		children = append(children, layout.Rigid(ui.layoutConfirmDelete))
	}
	if ui.editingID != 0 {
		children = append(children, layout.Rigid(ui.layoutEditPanel))
	}
	children = append(children,
		layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
		layout.Flexed(1, ui.layoutTasks),
	)
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
}

func (ui *UI) layoutAddForm(gtx layout.Context) layout.Dimensions {
	return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return material.Editor(theme, &ui.titleEditor, "What needs to be done?").Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return material.Button(theme, &ui.priorityBtn, string(ui.newPriority)).Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min.X = gtx.Dp(unit.Dp(100))
			gtx.Constraints.Max.X = gtx.Dp(unit.Dp(100))
			return material.Editor(theme, &ui.dueEditor, "YYYY-MM-DD").Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min.X = gtx.Dp(unit.Dp(90))
			gtx.Constraints.Max.X = gtx.Dp(unit.Dp(90))
			return material.Editor(theme, &ui.categoryEditor, "Category").Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return material.Button(theme, &ui.addBtn, "Add Task").Layout(gtx)
		}),
	)
}

func (ui *UI) layoutToolbar(gtx layout.Context) layout.Dimensions {
	children := []layout.FlexChild{
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return material.Editor(theme, &ui.searchEditor, "Search tasks...").Layout(gtx)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return material.Caption(theme, "Sort:").Layout(gtx)
		}),
	}
	for i, k := range task.SortKeys {
		children = append(children, layout.Rigid(navBtn(theme, &ui.sortBtn[i], string(k), ui.query.Sort == k)))
	}
	return layout.Flex{Alignment: layout.Middle}.Layout(gtx, children...)
}

func (ui *UI) layoutConfirmDelete(gtx layout.Context) layout.Dimensions {
	return layout.Inset{Top: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return material.Body1(theme, fmt.Sprintf("Delete task #%d? This cannot be undone.", ui.deletingID)).Layout(gtx)
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				btn := material.Button(theme, &ui.confirmDelBtn, "Delete")
				btn.Background = color.NRGBA{R: 0xC0, G: 0x30, B: 0x30, A: 0xFF}
				return btn.Layout(gtx)
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return material.Button(theme, &ui.cancelDelBtn, "Cancel").Layout(gtx)
			}),
		)
	})
}

func (ui *UI) layoutEditPanel(gtx layout.Context) layout.Dimensions {
	return layout.Inset{Top: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				label := material.Body1(theme, fmt.Sprintf("Edit task #%d", ui.editingID))
				label.Font.Weight = font.Bold
				return label.Layout(gtx)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
					layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
						return material.Editor(theme, &ui.editTitle, "Title").Layout(gtx)
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return material.Button(theme, &ui.editPriorityBtn, string(ui.editPriority)).Layout(gtx)
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						gtx.Constraints.Min.X = gtx.Dp(unit.Dp(100))
						gtx.Constraints.Max.X = gtx.Dp(unit.Dp(100))
						return material.Editor(theme, &ui.editDue, "YYYY-MM-DD").Layout(gtx)
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						gtx.Constraints.Min.X = gtx.Dp(unit.Dp(90))
						gtx.Constraints.Max.X = gtx.Dp(unit.Dp(90))
						return material.Editor(theme, &ui.editCategory, "Category").Layout(gtx)
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return material.Button(theme, &ui.editStatusBtn, string(ui.editStatus)).Layout(gtx)
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return material.Button(theme, &ui.saveEditBtn, "Save").Layout(gtx)
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return material.Button(theme, &ui.cancelEditBtn, "Cancel").Layout(gtx)
					}),
				)
			}),
		)
	})
}

func (ui *UI) layoutTasks(gtx layout.Context) layout.Dimensions {
	if len(ui.view) == 0 {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(material.H6(theme, "No tasks found").Layout),
			layout.Rigid(material.Body2(theme, "Start by adding a new task or adjust your filters to see your tasks.").Layout),
		)
	}

	today := ui.tasks.Today()
	return material.List(theme, &ui.taskList).Layout(gtx, len(ui.view), func(gtx layout.Context, i int) layout.Dimensions {
		t := ui.view[i]
		overdue := t.IsOverdue(today)

		statusColor := grey
		switch t.Status {
		case task.Pending:
			statusColor = orange
		case task.InProgress:
			statusColor = blue
		case task.Completed:
			statusColor = green
		}

		toggleLabel := "Done"
		if t.Completed {
			toggleLabel = "Undo"
		}

		return layout.Inset{Bottom: unit.Dp(6)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return material.Button(theme, &ui.toggleBtn[i], toggleLabel).Layout(gtx)
				}),
				layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							label := material.Body1(theme, t.Title)
							label.Font.Weight = font.Bold
							if t.Completed {
								label.Color = grey
							}
							return label.Layout(gtx)
						}),
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							label := material.Caption(theme, fmt.Sprintf("%s · %s · %s · %s", t.Priority, display.DueLabel(t.DueDate, today), t.Category, t.Status))
							label.Color = statusColor
							if overdue {
								label.Color = red
							}
							return label.Layout(gtx)
						}),
					)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return material.Button(theme, &ui.editBtn[i], "Edit").Layout(gtx)
				}),
				layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					btn := material.Button(theme, &ui.deleteBtn[i], "Delete")
					btn.Background = color.NRGBA{R: 0xC0, G: 0x30, B: 0x30, A: 0xFF}
					return btn.Layout(gtx)
				}),
			)
		})
	})
}
