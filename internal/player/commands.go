package player

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pixil98/go-clicker/internal/catalog"
	"github.com/pixil98/go-clicker/internal/display"
	"github.com/pixil98/go-clicker/internal/game"
	"github.com/pixil98/go-clicker/internal/persist"
	"github.com/pixil98/go-clicker/internal/storage"
)

const defaultSaveSlot = "main"

const extLeaderboardName = "leaderboard_name"

const helpText = `Commands:
  <enter> / click        earn coins
  buy <upgrade>          buy an upgrade (see 'upgrades')
  collect <collectible>  buy a seasonal collectible (see 'shop')
  buff <buff>            activate a buff (see 'buffs')
  stats                  your numbers
  upgrades, shop, buffs  what's for sale
  journal                every collectible you've ever owned
  pause, resume          stop and restart the clock
  save [slot]            save to the cloud (default slot 'main')
  load [slot]            load a cloud save
  saves                  list cloud saves
  delsave <slot>         delete a cloud save
  export                 write your game to a file
  import <file>          replace your game from an exported file
  endless                keep playing after finishing season 5
  submit [name]          post your score (endless mode only)
  top                    show the leaderboard
  quit                   disconnect`

// exec runs one command line. The engine treats invalid gameplay
// commands as silent no-ops, so the session compares snapshots around
// each call to tell the player what actually happened.
func (s *Session) exec(ctx context.Context, line string) (bool, error) {
	parts := strings.Fields(line)
	cmd := ""
	var args []string
	if len(parts) > 0 {
		cmd = parts[0]
		args = parts[1:]
	}

	switch cmd {
	case "", "click":
		return false, s.doClick()

	case "buy":
		if len(args) != 1 {
			return false, s.writeLine("Usage: buy <upgrade>")
		}
		return false, s.doBuyUpgrade(args[0])

	case "collect":
		if len(args) != 1 {
			return false, s.writeLine("Usage: collect <collectible>")
		}
		return false, s.doBuyCollectible(args[0])

	case "buff":
		if len(args) != 1 {
			return false, s.writeLine("Usage: buff <buff>")
		}
		return false, s.doBuyBuff(args[0])

	case "stats", "upgrades", "shop", "buffs", "journal":
		return false, s.showPanel(cmd)

	case "pause":
		return false, s.doPause(true)

	case "resume":
		return false, s.doPause(false)

	case "save":
		return false, s.doSave(ctx, slotArg(args))

	case "load":
		return false, s.doLoad(ctx, slotArg(args))

	case "saves":
		return false, s.doListSaves(ctx)

	case "delsave":
		if len(args) != 1 {
			return false, s.writeLine("Usage: delsave <slot>")
		}
		return false, s.doDeleteSave(ctx, args[0])

	case "export":
		return false, s.doExport()

	case "import":
		if len(args) != 1 {
			return false, s.writeLine("Usage: import <file>")
		}
		return false, s.doImport(args[0])

	case "endless":
		return false, s.doEndless()

	case "submit":
		return false, s.doSubmit(ctx, args)

	case "top":
		return false, s.doTop(ctx)

	case "help":
		return false, s.writeLine(helpText)

	case "quit":
		return true, nil

	default:
		return false, s.writeLine(fmt.Sprintf("Unknown command %q. Type 'help'.", cmd))
	}
}

// gameOver reports whether gameplay commands are shut off: the game is
// complete and the player hasn't entered endless mode.
func gameOver(s *game.Snapshot) bool {
	return s.GameCompleted && s.CurrentSeason != catalog.EndlessSeason
}

func slotArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultSaveSlot
}

func (s *Session) doClick() error {
	before := s.engine.Snapshot()
	s.engine.Click()
	after := s.engine.Snapshot()

	if after.TotalClicks == before.TotalClicks {
		if before.IsPaused {
			return s.writeLine("The game is paused.")
		}
		return s.writeLine("The game is over. Type 'endless' to keep playing.")
	}

	return s.writeLine(fmt.Sprintf("+%s coins (%s total)",
		display.FormatNumber(after.Coins-before.Coins), display.FormatNumber(after.Coins)))
}

func (s *Session) doBuyUpgrade(id string) error {
	before := s.engine.Snapshot()
	s.engine.BuyUpgrade(id)
	after := s.engine.Snapshot()

	prev := before.Upgrade(id)
	if prev == nil {
		return s.writeLine(fmt.Sprintf("No upgrade called %q. Type 'upgrades'.", id))
	}

	cur := after.Upgrade(id)
	if cur.Owned > prev.Owned {
		return s.writeLine(fmt.Sprintf("Bought %s for %s coins. Next costs %s.",
			cur.Name, display.FormatNumber(prev.Cost), display.FormatNumber(cur.Cost)))
	}

	switch {
	case gameOver(before):
		return s.writeLine("The game is over. Type 'endless' to keep playing.")
	case prev.MaxOwned > 0 && prev.Owned >= prev.MaxOwned:
		return s.writeLine(fmt.Sprintf("You already own the maximum %d of %s.", prev.MaxOwned, prev.Name))
	case before.UsedSlots() >= before.UpgradeSlots:
		return s.writeLine("All your upgrade slots are full. Advance the season for more.")
	case before.Coins < prev.Cost:
		return s.writeLine(fmt.Sprintf("%s costs %s coins; you have %s.",
			prev.Name, display.FormatNumber(prev.Cost), display.FormatNumber(before.Coins)))
	default:
		return s.writeLine("You can't buy that right now.")
	}
}

func (s *Session) doBuyCollectible(id string) error {
	before := s.engine.Snapshot()
	s.engine.BuyCollectible(id)
	after := s.engine.Snapshot()

	prev := before.Collectible(id)
	if prev == nil {
		return s.writeLine(fmt.Sprintf("No collectible called %q in this season's shop. Type 'shop'.", id))
	}

	// A season advance swaps the shop out, so the id may be gone from
	// the new snapshot. The archive still records the purchase.
	if after.Collectible(id) == nil || after.Collectible(id).Owned {
		return s.writeLine(fmt.Sprintf("Collected %s %s for %s coins!",
			prev.Image, prev.Name, display.FormatNumber(prev.Cost)))
	}

	switch {
	case gameOver(before):
		return s.writeLine("The game is over. Type 'endless' to keep playing.")
	case prev.Owned:
		return s.writeLine(fmt.Sprintf("You already own %s.", prev.Name))
	case before.Coins < prev.Cost:
		return s.writeLine(fmt.Sprintf("%s costs %s coins; you have %s.",
			prev.Name, display.FormatNumber(prev.Cost), display.FormatNumber(before.Coins)))
	default:
		return s.writeLine("You can't collect that right now.")
	}
}

func (s *Session) doBuyBuff(id string) error {
	before := s.engine.Snapshot()
	s.engine.BuyBuff(id)
	after := s.engine.Snapshot()

	prev := before.Buff(id)
	if prev == nil {
		return s.writeLine(fmt.Sprintf("No buff called %q. Type 'buffs'.", id))
	}

	cur := after.Buff(id)
	if cur.IsActive && !prev.IsActive {
		if cur.Timed() {
			return s.writeLine(fmt.Sprintf("%s active for %s!", cur.Name, display.FormatMillis(cur.Duration)))
		}
		return s.writeLine(fmt.Sprintf("%s active for your next %d clicks!", cur.Name, cur.Uses))
	}

	switch {
	case gameOver(before):
		return s.writeLine("The game is over. Type 'endless' to keep playing.")
	case prev.IsActive:
		return s.writeLine(fmt.Sprintf("%s is already active.", prev.Name))
	case prev.LastUsed > 0 && s.engine.Now().UnixMilli()-prev.LastUsed < prev.Cooldown:
		left := prev.Cooldown - (s.engine.Now().UnixMilli() - prev.LastUsed)
		return s.writeLine(fmt.Sprintf("%s is cooling down for another %s.", prev.Name, display.FormatMillis(left)))
	case before.Coins < prev.Cost:
		return s.writeLine(fmt.Sprintf("%s costs %s coins; you have %s.",
			prev.Name, display.FormatNumber(prev.Cost), display.FormatNumber(before.Coins)))
	default:
		return s.writeLine("You can't activate that right now.")
	}
}

func (s *Session) doPause(pause bool) error {
	snap := s.engine.Snapshot()
	if snap.IsPaused == pause {
		if pause {
			return s.writeLine("Already paused.")
		}
		return s.writeLine("The game isn't paused.")
	}

	s.engine.TogglePause()
	if pause {
		return s.writeLine("Paused. Coins stop flowing until you 'resume'.")
	}
	return s.writeLine("Resumed.")
}

func (s *Session) doSave(ctx context.Context, slot string) error {
	err := s.mgr.cloud.Save(ctx, s.engine.OwnerId(), slot, s.engine.Snapshot(), false)
	if err != nil {
		return s.writeLine(fmt.Sprintf("Save failed: %v", err))
	}
	return s.writeLine(fmt.Sprintf("Saved to slot %q.", slot))
}

func (s *Session) doLoad(ctx context.Context, slot string) error {
	rec, err := s.mgr.cloud.Load(ctx, s.engine.OwnerId(), slot)
	if err != nil {
		return s.writeLine(fmt.Sprintf("Load failed: %v", err))
	}
	if rec == nil {
		return s.writeLine(fmt.Sprintf("No save in slot %q.", slot))
	}

	s.engine.Load(rec.GameData)
	if err := s.writeLine(fmt.Sprintf("Loaded slot %q. The game is paused; 'resume' when ready.", slot)); err != nil {
		return err
	}
	return s.showPanel("stats")
}

func (s *Session) doListSaves(ctx context.Context) error {
	recs, err := s.mgr.cloud.List(ctx, s.engine.OwnerId())
	if err != nil {
		return s.writeLine(fmt.Sprintf("Listing saves failed: %v", err))
	}
	if len(recs) == 0 {
		return s.writeLine("No cloud saves yet. Try 'save'.")
	}

	out, err := display.Render("saves", display.NewSavesView(recs))
	if err != nil {
		return s.writeLine("Something went wrong rendering that.")
	}
	return s.writeLine(out)
}

func (s *Session) doDeleteSave(ctx context.Context, slot string) error {
	if err := s.mgr.cloud.Delete(ctx, s.engine.OwnerId(), slot); err != nil {
		return s.writeLine(fmt.Sprintf("Delete failed: %v", err))
	}
	return s.writeLine(fmt.Sprintf("Deleted slot %q.", slot))
}

func (s *Session) doExport() error {
	data, err := s.engine.Export()
	if err != nil {
		return s.writeLine(fmt.Sprintf("Export failed: %v", err))
	}

	name := fmt.Sprintf("clicker-%s-%s.json", strings.ToLower(s.account.Name), time.Now().Format("2006-01-02"))
	path := filepath.Join(s.mgr.exportDir, name)
	if err := storage.AtomicWrite(path, data, 0o644); err != nil {
		return s.writeLine(fmt.Sprintf("Export failed: %v", err))
	}

	return s.writeLine(fmt.Sprintf("Exported to %s.", path))
}

func (s *Session) doImport(file string) error {
	// Imports only read from the export directory.
	path := filepath.Join(s.mgr.exportDir, filepath.Base(file))
	data, err := os.ReadFile(path)
	if err != nil {
		return s.writeLine(fmt.Sprintf("Import failed: %v", err))
	}

	if err := s.engine.Import(data); err != nil {
		return s.writeLine(fmt.Sprintf("Import failed: %v. Your game is unchanged.", err))
	}

	if err := s.writeLine("Imported."); err != nil {
		return err
	}
	return s.showPanel("stats")
}

func (s *Session) doEndless() error {
	before := s.engine.Snapshot()
	s.engine.EnterEndless()
	after := s.engine.Snapshot()

	if after.CurrentSeason == catalog.EndlessSeason && before.CurrentSeason != catalog.EndlessSeason {
		// The celebration arrives as a bus event.
		return nil
	}

	if before.CurrentSeason == catalog.EndlessSeason {
		return s.writeLine("You're already in endless mode.")
	}
	return s.writeLine("Endless mode unlocks after you complete season 5.")
}

func (s *Session) doSubmit(ctx context.Context, args []string) error {
	snap := s.engine.Snapshot()
	if snap.CurrentSeason != catalog.EndlessSeason {
		return s.writeLine("The leaderboard opens in endless mode.")
	}

	name := s.account.Name
	if len(args) > 0 {
		name = strings.Join(args, " ")
		if err := s.account.Set(extLeaderboardName, name); err != nil {
			return s.writeLine(fmt.Sprintf("Submit failed: %v", err))
		}
		if err := s.mgr.accounts.Save(strings.ToLower(s.account.Name), s.account); err != nil {
			return s.writeLine(fmt.Sprintf("Submit failed: %v", err))
		}
	} else {
		var stored string
		if ok, err := s.account.Get(extLeaderboardName, &stored); err == nil && ok {
			name = stored
		}
	}

	err := s.mgr.board.Submit(ctx, &persist.LeaderboardEntry{
		OwnerId:    s.engine.OwnerId(),
		PlayerName: name,
		Coins:      snap.Coins,
		Level:      snap.Level,
		Season:     snap.CurrentSeason,
	})
	if err != nil {
		return s.writeLine(fmt.Sprintf("Submit failed: %v", err))
	}

	return s.writeLine(fmt.Sprintf("Submitted %s coins as %s.", display.FormatNumber(snap.Coins), name))
}

func (s *Session) doTop(ctx context.Context) error {
	entries, err := s.mgr.board.Top(ctx, 10)
	if err != nil {
		return s.writeLine(fmt.Sprintf("Leaderboard unavailable: %v", err))
	}
	if len(entries) == 0 {
		return s.writeLine("The leaderboard is empty. Finish season 5 and 'submit'!")
	}

	out, err := display.Render("leaderboard", display.NewLeaderboardView(entries))
	if err != nil {
		return s.writeLine("Something went wrong rendering that.")
	}
	return s.writeLine(out)
}
