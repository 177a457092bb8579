package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/system-defender/components"
	"github.com/lixenwraith/system-defender/config"
	"github.com/lixenwraith/system-defender/constants"
	"github.com/lixenwraith/system-defender/network"
	"github.com/lixenwraith/system-defender/shop"
)

var errNoStudent = errors.New("look up a student code first")

// gameSelection is what the lobby hands to the game screen
type gameSelection struct {
	Mode       constants.GameMode
	Difficulty int
	Mobile     bool
	Bonus      components.StatBonus
}

// lobbyModel holds lobby state independent of the widgets
type lobbyModel struct {
	lookup *network.LookupClient
	store  *shop.Store
	logger zerolog.Logger

	code    string
	student *network.Student
	profile *shop.Profile

	mode       constants.GameMode
	difficulty int
	mobile     bool
}

func newLobbyModel(game config.GameConfig, lookup *network.LookupClient, store *shop.Store, logger zerolog.Logger) *lobbyModel {
	mode := game.Mode
	if !mode.Valid() {
		mode = constants.ModeHangul
	}
	return &lobbyModel{
		lookup:     lookup,
		store:      store,
		logger:     logger,
		mode:       mode,
		difficulty: constants.ClampDifficulty(game.Difficulty),
		mobile:     game.Mobile,
	}
}

// Lookup resolves code and loads its purchases
func (m *lobbyModel) Lookup(ctx context.Context, code string) error {
	student, err := m.lookup.Lookup(ctx, code)
	if err != nil {
		return err
	}
	profile, err := m.store.Load(student.Code, student.Name, student.Cookies)
	if err != nil {
		return err
	}
	m.code = student.Code
	m.student = student
	m.profile = profile
	m.logger.Info().Str("code", student.Code).Bool("offline", student.Offline).Int("cookies", profile.Cookies).Msg("student loaded")
	return nil
}

// Purchase buys one level of id and persists it
func (m *lobbyModel) Purchase(id constants.ShopItemID) error {
	if m.profile == nil {
		return errNoStudent
	}
	if err := m.profile.Purchase(id); err != nil {
		return err
	}
	return m.store.Save(m.code, m.profile)
}

// Reset refunds every purchase and persists the empty set
func (m *lobbyModel) Reset() (int, error) {
	if m.profile == nil {
		return 0, errNoStudent
	}
	refund := m.profile.Reset()
	return refund, m.store.Save(m.code, m.profile)
}

func (m *lobbyModel) SetMode(mode constants.GameMode) {
	if mode.Valid() {
		m.mode = mode
	}
}

func (m *lobbyModel) SetDifficulty(d int) {
	m.difficulty = constants.ClampDifficulty(d)
}

func (m *lobbyModel) SetMobile(mobile bool) {
	m.mobile = mobile
}

// Selection returns the run settings with the shop bonus of the loaded student
func (m *lobbyModel) Selection() gameSelection {
	sel := gameSelection{Mode: m.mode, Difficulty: m.difficulty, Mobile: m.mobile}
	if m.profile != nil {
		sel.Bonus = m.profile.Bonuses()
	}
	return sel
}

// Summary describes the loaded student and their purchases
func (m *lobbyModel) Summary() string {
	if m.student == nil {
		return "학생 코드를 입력하세요"
	}
	var sb strings.Builder
	name := m.student.Name
	if m.student.Offline {
		name += " (offline)"
	}
	fmt.Fprintf(&sb, "%s  쿠키 %d\n", name, m.profile.Cookies)
	for _, item := range constants.ShopItems {
		fmt.Fprintf(&sb, "%s  Lv %d/%d  (%d)\n", item.Name, m.profile.Level(item.ID), item.Limit, item.Cost)
	}
	return sb.String()
}

// lobbyResult tells the caller what the player chose
type lobbyResult int

const (
	lobbyQuit lobbyResult = iota
	lobbyStart
)

var modeOptions = []constants.GameMode{constants.ModeHangul, constants.ModeMath, constants.ModeArithmetic}

// runLobby shows the lobby form until the player starts a run or quits
func runLobby(m *lobbyModel, lookupTimeout time.Duration) (lobbyResult, error) {
	app := tview.NewApplication()
	result := lobbyQuit

	info := tview.NewTextView().SetDynamicColors(false).SetText(m.Summary())
	info.SetBorder(true).SetTitle(" 프로필 ")
	notice := tview.NewTextView()

	setNotice := func(err error, ok string) {
		if err != nil {
			notice.SetTextColor(tcell.ColorRed).SetText(err.Error())
		} else {
			notice.SetTextColor(tcell.ColorGreen).SetText(ok)
		}
		info.SetText(m.Summary())
	}

	modeNames := make([]string, len(modeOptions))
	modeIndex := 0
	for i, mode := range modeOptions {
		modeNames[i] = string(mode)
		if mode == m.mode {
			modeIndex = i
		}
	}
	difficulties := make([]string, 0, constants.MaxDifficulty)
	for d := constants.MinDifficulty; d <= constants.MaxDifficulty; d++ {
		difficulties = append(difficulties, fmt.Sprint(d))
	}
	itemNames := make([]string, len(constants.ShopItems))
	for i, item := range constants.ShopItems {
		itemNames[i] = item.Name
	}
	selectedItem := 0

	form := tview.NewForm()
	form.AddInputField("학생 코드", m.code, 16, nil, nil).
		AddButton("조회", func() {
			code := form.GetFormItemByLabel("학생 코드").(*tview.InputField).GetText()
			ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
			defer cancel()
			err := m.Lookup(ctx, code)
			setNotice(err, "조회 완료")
		}).
		AddDropDown("모드", modeNames, modeIndex, func(_ string, i int) {
			if i >= 0 {
				m.SetMode(modeOptions[i])
			}
		}).
		AddDropDown("난이도", difficulties, m.difficulty-constants.MinDifficulty, func(_ string, i int) {
			if i >= 0 {
				m.SetDifficulty(i + constants.MinDifficulty)
			}
		}).
		AddCheckbox("모바일", m.mobile, m.SetMobile).
		AddDropDown("상점", itemNames, 0, func(_ string, i int) {
			selectedItem = i
		}).
		AddButton("구매", func() {
			if selectedItem < 0 {
				return
			}
			item := constants.ShopItems[selectedItem]
			setNotice(m.Purchase(item.ID), item.Name+" 구매")
		}).
		AddButton("초기화", func() {
			refund, err := m.Reset()
			setNotice(err, fmt.Sprintf("쿠키 %d개 환불", refund))
		}).
		AddButton("시작", func() {
			result = lobbyStart
			app.Stop()
		}).
		AddButton("종료", func() {
			app.Stop()
		})
	form.SetBorder(true).SetTitle(" System Defender ")

	layout := tview.NewFlex().
		AddItem(form, 0, 1, true).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(info, 0, 1, false).
			AddItem(notice, 1, 0, false), 0, 1, false)

	app.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		if ev.Key() == tcell.KeyCtrlC || ev.Key() == tcell.KeyCtrlQ {
			app.Stop()
			return nil
		}
		return ev
	})

	if err := app.SetRoot(layout, true).EnableMouse(true).Run(); err != nil {
		return lobbyQuit, fmt.Errorf("lobby: %w", err)
	}
	return result, nil
}
