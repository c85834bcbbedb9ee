// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package windows

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/magpierre/gridaccess/a11y"
	"github.com/magpierre/gridaccess/adapters"
	arrowadapter "github.com/magpierre/gridaccess/adapters/arrow"
	"github.com/magpierre/gridaccess/datatable"
	"github.com/magpierre/gridaccess/internal/config"
	"github.com/magpierre/gridaccess/internal/filter"
	"github.com/magpierre/gridaccess/internal/script"
	"github.com/magpierre/gridaccess/internal/sharing"
)

// Browser is the main window: one tab per opened table, a filter bar and a
// status bar that reads out accessibility events.
type Browser struct {
	app       fyne.App
	win       fyne.Window
	cfg       *config.Config
	logger    *slog.Logger
	formatter a11y.NameFormatter
	tabs      *container.DocTabs
	status    *widget.Label
	filter    *widget.Entry
	views     map[*container.TabItem]*TableView
}

// NewBrowser creates the browser window on a. The name script in cfg, if
// any, is compiled here.
func NewBrowser(a fyne.App, cfg *config.Config, logger *slog.Logger) (*Browser, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}

	b := &Browser{
		app:    a,
		cfg:    cfg,
		logger: logger.With("component", "browser"),
		views:  make(map[*container.TabItem]*TableView),
	}
	if path := cfg.Accessibility.NameScript; path != "" {
		f, err := script.CompileFile(path, logger)
		if err != nil {
			return nil, err
		}
		b.formatter = f
	}

	a.Settings().SetTheme(&ContrastTheme{})
	b.win = a.NewWindow("Grid Access Browser")
	b.win.Resize(fyne.NewSize(900, 600))
	b.win.SetContent(b.layout())
	return b, nil
}

func (b *Browser) layout() fyne.CanvasObject {
	b.status = widget.NewLabel("Ready")
	b.status.TextStyle = fyne.TextStyle{Italic: true}

	b.tabs = container.NewDocTabs()
	b.tabs.CloseIntercept = func(ti *container.TabItem) {
		b.closeTab(ti)
	}
	b.tabs.OnSelected = func(ti *container.TabItem) {
		if tv, ok := b.views[ti]; ok {
			b.SetStatus(fmt.Sprintf("Table %s (%s)", ti.Text, tv.Summary()))
		}
	}

	b.filter = widget.NewEntry()
	b.filter.SetPlaceHolder("Filter rows")
	b.filter.OnChanged = func(text string) {
		if err := b.ApplyFilter(text); err != nil {
			b.SetStatus(err.Error())
		}
	}

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.FolderOpenIcon(), b.showOpenDialog),
		widget.NewToolbarAction(theme.DocumentCreateIcon(), func() {
			if err := b.activateSelected(); err != nil {
				b.SetStatus(err.Error())
			}
		}),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), b.showExportDialog),
	)
	top := container.NewBorder(nil, nil, toolbar, nil, b.filter)
	return container.NewBorder(top, container.NewHBox(b.status), nil, nil, b.tabs)
}

// Window returns the browser window.
func (b *Browser) Window() fyne.Window {
	return b.win
}

// SetStatus shows message in the status bar.
func (b *Browser) SetStatus(message string) {
	if b.status != nil {
		b.status.SetText(message)
	}
}

// Status returns the status bar text.
func (b *Browser) Status() string {
	return b.status.Text
}

// Current returns the view of the selected tab.
func (b *Browser) Current() (*TableView, bool) {
	ti := b.tabs.Selected()
	if ti == nil {
		return nil, false
	}
	tv, ok := b.views[ti]
	return tv, ok
}

// TabCount returns the number of open tables.
func (b *Browser) TabCount() int {
	return len(b.tabs.Items)
}

// AddGrid opens grid in a new tab.
func (b *Browser) AddGrid(name string, grid *datatable.Grid) (*TableView, error) {
	for _, col := range grid.Columns() {
		if b.cfg.Accessibility.IsReadOnly(col.ID()) {
			if err := grid.SetColumnEditable(col, false); err != nil {
				return nil, err
			}
		}
	}

	cfg := a11y.DefaultConfig()
	cfg.Logger = b.logger
	cfg.NameFormatter = b.formatter
	if b.cfg.Accessibility.EditAction != "" {
		cfg.EditActionName = b.cfg.Accessibility.EditAction
	}

	tv, err := NewTableView(grid, cfg, b.win)
	if err != nil {
		return nil, err
	}
	tv.OnStatus = func(s string) { b.SetStatus(fmt.Sprintf("Table %s (%s)", name, s)) }
	tv.Tree().AddObserver(a11y.ObserverFunc(b.announce))
	if b.cfg.Log.Events {
		tv.Tree().AddObserver(a11y.NewLoggingObserver(b.logger))
	}

	ti := container.NewTabItem(name, tv.Widget())
	b.views[ti] = tv
	b.tabs.Append(ti)
	b.tabs.Select(ti)
	b.SetStatus(fmt.Sprintf("Loaded %s (%s)", name, tv.Summary()))
	return tv, nil
}

// announce turns accessibility events into status bar text, a stand-in
// for what a screen reader would speak.
func (b *Browser) announce(ev a11y.Event) {
	switch ev.Type {
	case a11y.EventSelectionAdd:
		if row, ok := ev.Target.(*a11y.Row); ok {
			name, err := row.Name()
			if err == nil {
				b.SetStatus(fmt.Sprintf("Row %d selected: %s", ev.Row+1, name))
			}
		}
	case a11y.EventNameChange:
		if cell, ok := ev.Target.(*a11y.Cell); ok {
			name, err := cell.Name()
			if err == nil {
				b.SetStatus(fmt.Sprintf("Row %d %s: %s", ev.Row+1, cell.Column().ID(), name))
			}
		}
	}
}

func (b *Browser) closeTab(ti *container.TabItem) {
	if tv, ok := b.views[ti]; ok {
		tv.Close()
		delete(b.views, ti)
	}
	b.tabs.Remove(ti)
	if b.tabs.Selected() == nil {
		b.SetStatus("Ready")
	}
}

// CloseAll closes every tab.
func (b *Browser) CloseAll() {
	for _, ti := range append([]*container.TabItem(nil), b.tabs.Items...) {
		b.closeTab(ti)
	}
}

// ApplyFilter filters the current table to rows containing text. An empty
// text removes the filter.
func (b *Browser) ApplyFilter(text string) error {
	tv, ok := b.Current()
	if !ok {
		return nil
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return tv.Grid().ApplyFilter(nil)
	}
	return tv.Grid().ApplyFilter(filter.Contains{Text: text})
}

func (b *Browser) activateSelected() error {
	tv, ok := b.Current()
	if !ok {
		return errors.New("no table open")
	}
	return tv.ActivateSelected()
}

// OpenFile loads a data file into a new tab. Delta Sharing profiles open
// the table picker instead.
func (b *Browser) OpenFile(ctx context.Context, path string) error {
	grid, ft, err := adapters.OpenGrid(ctx, path)
	if ft == adapters.FileTypeDeltaSharingProfile {
		return b.OpenProfile(ctx, path)
	}
	if err != nil {
		return err
	}
	_, err = b.AddGrid(filepath.Base(path), grid)
	return err
}

// OpenProfile lists the tables of a Delta Sharing profile and lets the
// user pick one to load.
func (b *Browser) OpenProfile(ctx context.Context, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read profile: %w", err)
	}
	client, err := sharing.NewClient(string(content), b.cfg.Sharing.Timeout(), b.logger)
	if err != nil {
		return err
	}
	refs, err := client.ListTables(ctx)
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		b.SetStatus("The profile shares no tables")
		return nil
	}

	names := make([]string, len(refs))
	for i, ref := range refs {
		names[i] = ref.String()
	}
	choice := widget.NewSelect(names, nil)
	choice.SetSelectedIndex(0)
	dialog.ShowCustomConfirm("Open shared table", "Open", "Cancel", choice, func(ok bool) {
		if !ok {
			return
		}
		ref := refs[choice.SelectedIndex()]
		b.SetStatus("Loading " + ref.String())
		go func() {
			grid, err := b.loadShared(ctx, client, ref)
			fyne.Do(func() {
				if err == nil {
					_, err = b.AddGrid(ref.Name, grid)
				}
				if err != nil {
					dialog.ShowError(err, b.win)
				}
			})
		}()
	}, b.win)
	return nil
}

func (b *Browser) loadShared(ctx context.Context, client *sharing.Client, ref sharing.TableRef) (*datatable.Grid, error) {
	table, err := client.Load(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer table.Release()

	src, err := arrowadapter.NewFromArrowTable(table)
	if err != nil {
		return nil, err
	}
	defer src.Release()
	return datatable.NewGridFromSource(src)
}

// ExportParquet writes the current view of a table to a Parquet file.
func (b *Browser) ExportParquet(tv *TableView, path string) error {
	table, err := arrowadapter.FromDataSource(tv.Grid().View(), nil)
	if err != nil {
		return err
	}
	defer table.Release()
	return arrowadapter.WriteParquetFile(table, path)
}

func (b *Browser) showOpenDialog() {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil || r == nil {
			return
		}
		path := r.URI().Path()
		r.Close()

		b.SetStatus("Loading " + filepath.Base(path))
		go func() {
			ctx := context.Background()
			grid, ft, err := adapters.OpenGrid(ctx, path)
			fyne.Do(func() {
				switch {
				case ft == adapters.FileTypeDeltaSharingProfile:
					err = b.OpenProfile(ctx, path)
				case err == nil:
					_, err = b.AddGrid(filepath.Base(path), grid)
				}
				if err != nil {
					dialog.ShowError(err, b.win)
				}
			})
		}()
	}, b.win)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".tsv", ".parquet", ".json", ".share"}))
	d.Show()
}

func (b *Browser) showExportDialog() {
	tv, ok := b.Current()
	if !ok {
		b.SetStatus("No table to export")
		return
	}
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil || w == nil {
			return
		}
		path := w.URI().Path()
		w.Close()
		if err := b.ExportParquet(tv, path); err != nil {
			dialog.ShowError(err, b.win)
			return
		}
		b.SetStatus("Exported " + filepath.Base(path))
	}, b.win)
	d.SetFileName("export.parquet")
	d.Show()
}

// ShowAndRun shows the window and runs the application loop.
func (b *Browser) ShowAndRun() {
	b.win.SetOnClosed(b.CloseAll)
	b.win.ShowAndRun()
}
