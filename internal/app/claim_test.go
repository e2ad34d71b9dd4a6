package service_test

import (
	"context"
	"testing"
	"time"

	service "github.com/okian/foil/internal/app"
	"github.com/okian/foil/internal/domain/ticket"
	. "github.com/smartystreets/goconvey/convey"
)

func item(id, tierID string, t *ticket.Ticket) *service.Item {
	return &service.Item{
		ID:        id,
		TierID:    tierID,
		SerialID:  "ZERONE-000001",
		CreatedAt: testBase.UnixMilli(),
		State:     service.ItemScratched,
		Ticket:    t,
	}
}

func TestClaimSettlement(t *testing.T) {
	ctx := context.Background()

	Convey("Given a losing ticket at pity count five", t, func() {
		clk := &fakeClock{t: testBase}
		svc := newTestService(clk)
		importState(svc, &service.State{
			Money:     50,
			PityCount: 5,
			Inventory: []*service.Item{item("inv_a", "z1", losingTicket())},
		})

		Convey("When claiming it", func() {
			sum, err := svc.Claim(ctx, "inv_a")
			So(err, ShouldBeNil)

			Convey("Then the payout is zero and money is untouched", func() {
				So(sum.Payout, ShouldEqual, 0)
				So(svc.GetState().Money, ShouldEqual, 50)
			})

			Convey("Then the first claim on the tier pays a token", func() {
				So(svc.GetState().Tokens, ShouldEqual, 1)
			})

			Convey("Then the loss arms the pity backstop and restarts the counter", func() {
				st := svc.GetState()
				So(st.PityCount, ShouldEqual, 0)
				So(st.BackstopReady, ShouldBeTrue)
				So(st.Stats.Losses, ShouldEqual, 1)
				So(st.Stats.CurrentLossStreak, ShouldEqual, 1)
			})

			Convey("Then the streak bumps after settlement", func() {
				So(svc.StreakMetrics().Count, ShouldEqual, 1)
			})

			Convey("And claiming again is rejected", func() {
				_, err := svc.Claim(ctx, "inv_a")
				So(err, ShouldEqual, service.ErrAlreadyClaimed)
			})
		})
	})

	Convey("A natural win one loss short of the threshold counts a pity avoid", t, func() {
		clk := &fakeClock{t: testBase}
		svc := newTestService(clk)
		importState(svc, &service.State{
			Money:     50,
			PityCount: 5,
			Inventory: []*service.Item{item("inv_w", "z1", winningTicket(10))},
		})

		sum, err := svc.Claim(ctx, "inv_w")
		So(err, ShouldBeNil)
		So(sum.Payout, ShouldEqual, 10)
		st := svc.GetState()
		So(st.Money, ShouldEqual, 60)
		So(st.PityCount, ShouldEqual, 0)
		So(st.BackstopReady, ShouldBeFalse)
		So(st.Stats.PityAvoids, ShouldEqual, 1)
		So(st.Stats.Wins, ShouldEqual, 1)
		So(st.Stats.BiggestWin, ShouldEqual, 10)
	})

	Convey("Any win while the pity counter is hot counts an avoid", t, func() {
		clk := &fakeClock{t: testBase}
		svc := newTestService(clk)
		importState(svc, &service.State{
			Money:     50,
			PityCount: 2,
			Inventory: []*service.Item{item("inv_w2", "z1", winningTicket(10))},
		})

		_, err := svc.Claim(ctx, "inv_w2")
		So(err, ShouldBeNil)
		st := svc.GetState()
		So(st.PityCount, ShouldEqual, 0)
		So(st.Stats.PityAvoids, ShouldEqual, 1)
		So(st.Stats.CurrentLossStreak, ShouldEqual, 0)
	})

	Convey("The claim summary freezes price, multipliers, and winning numbers", t, func() {
		clk := &fakeClock{t: testBase}
		svc := newTestService(clk)
		importState(svc, &service.State{
			Money:     50,
			Inventory: []*service.Item{item("inv_s", "z1", winningTicket(10))},
		})

		sum, err := svc.Claim(ctx, "inv_s")
		So(err, ShouldBeNil)
		So(sum.Price, ShouldEqual, 5)
		So(sum.Net, ShouldEqual, 5)
		So(sum.WinningSum, ShouldEqual, 10)
		So(sum.Winning, ShouldResemble, []int{5})
		So(sum.UpgMult, ShouldEqual, 1)
		So(sum.StreakMult, ShouldEqual, 1)
	})

	Convey("Winning tiles with a zero prize still land in the histogram", t, func() {
		clk := &fakeClock{t: testBase}
		svc := newTestService(clk)
		importState(svc, &service.State{
			Money:     50,
			Inventory: []*service.Item{item("inv_z", "z1", winningTicket(0))},
		})

		_, err := svc.Claim(ctx, "inv_z")
		So(err, ShouldBeNil)
		So(svc.GetState().Stats.TilePrizeCounts["0"], ShouldEqual, 1)
	})

	Convey("A half-revealed ticket cannot be claimed", t, func() {
		clk := &fakeClock{t: testBase}
		svc := newTestService(clk)
		partial := losingTicket()
		partial.Tiles[3].Revealed = false
		importState(svc, &service.State{
			Money:     50,
			Inventory: []*service.Item{item("inv_p", "z1", partial)},
		})
		_, err := svc.Claim(ctx, "inv_p")
		So(err, ShouldEqual, service.ErrNotFullyRevealed)
	})

	Convey("A revealed bonus pays on top of the multiplied winnings", t, func() {
		clk := &fakeClock{t: testBase}
		svc := newTestService(clk)
		tk := winningTicket(10)
		tk.Bonus = &ticket.Bonus{Amount: 3, Revealed: true}
		importState(svc, &service.State{
			Money:     50,
			Inventory: []*service.Item{item("inv_b", "z2", tk)},
		})
		sum, err := svc.Claim(ctx, "inv_b")
		So(err, ShouldBeNil)
		So(sum.Payout, ShouldEqual, 13)
		So(sum.Bonus, ShouldEqual, 3)

		Convey("But an unrevealed bonus is forfeited", func() {
			svc2 := newTestService(&fakeClock{t: testBase})
			tk2 := winningTicket(10)
			tk2.Bonus = &ticket.Bonus{Amount: 3}
			importState(svc2, &service.State{
				Money:     50,
				Inventory: []*service.Item{item("inv_c", "z2", tk2)},
			})
			sum2, err := svc2.Claim(ctx, "inv_c")
			So(err, ShouldBeNil)
			So(sum2.Payout, ShouldEqual, 10)
		})
	})
}

func TestTokenRewards(t *testing.T) {
	ctx := context.Background()

	Convey("The first-claim token is granted once per tier", t, func() {
		clk := &fakeClock{t: testBase}
		svc := newTestService(clk)
		importState(svc, &service.State{
			Money: 50,
			Inventory: []*service.Item{
				item("inv_1", "z1", losingTicket()),
				item("inv_2", "z1", losingTicket()),
			},
		})
		_, err := svc.Claim(ctx, "inv_1")
		So(err, ShouldBeNil)
		_, err = svc.Claim(ctx, "inv_2")
		So(err, ShouldBeNil)
		So(svc.GetState().Tokens, ShouldEqual, 1)
	})

	Convey("The fifteen-claim counter carries its remainder", t, func() {
		clk := &fakeClock{t: testBase}
		svc := newTestService(clk)
		importState(svc, &service.State{
			Money:            50,
			ClaimsSinceToken: 14,
			FirstClaims:      map[string]bool{"z1": true},
			Inventory:        []*service.Item{item("inv_1", "z1", losingTicket())},
		})
		_, err := svc.Claim(ctx, "inv_1")
		So(err, ShouldBeNil)
		st := svc.GetState()
		So(st.Tokens, ShouldEqual, 1)
		So(st.Stats.Claims, ShouldEqual, 1)
	})

	Convey("Ten claims inside one day pay a daily token, once", t, func() {
		clk := &fakeClock{t: testBase}
		svc := newTestService(clk)
		items := make([]*service.Item, 0, 11)
		for i := 0; i < 11; i++ {
			items = append(items, item(string(rune('a'+i))+"_inv", "z1", losingTicket()))
		}
		importState(svc, &service.State{
			Money:       50,
			FirstClaims: map[string]bool{"z1": true},
			Inventory:   items,
		})

		claimRange := func(from, to int) {
			for i := from; i < to; i++ {
				_, err := svc.Claim(ctx, items[i].ID)
				So(err, ShouldBeNil)
				clk.Advance(time.Second)
			}
		}

		claimRange(0, 9)
		So(svc.GetState().Tokens, ShouldEqual, 0)
		claimRange(9, 10)
		So(svc.GetState().Tokens, ShouldEqual, 1)
		// The eleventh claim the same day grants nothing extra.
		claimRange(10, 11)
		So(svc.GetState().Tokens, ShouldEqual, 1)
	})
}

func TestBackstopCycle(t *testing.T) {
	ctx := context.Background()

	Convey("Given an armed backstop and a losing unrevealed ticket", t, func() {
		clk := &fakeClock{t: testBase}
		svc := newTestService(clk)
		tk := losingTicket()
		for i := range tk.Tiles {
			tk.Tiles[i].Revealed = false
		}
		tk.FirstRevealAt = 0
		it := item("inv_bs", "z1", tk)
		it.State = service.ItemSealed
		importState(svc, &service.State{
			Money:         50,
			BackstopReady: true,
			Inventory:     []*service.Item{it},
		})

		Convey("When the first tile is revealed", func() {
			got, err := svc.RevealAt(ctx, "inv_bs", 0)
			So(err, ShouldBeNil)

			Convey("Then the grid is rewritten to pay the floor", func() {
				t0 := got.Ticket.Tiles[0]
				So(t0.Num, ShouldEqual, 5)
				So(t0.Prize, ShouldEqual, 1) // 30% of $5, floored, min $1
				So(got.Ticket.BackstopApplied, ShouldBeTrue)
				So(got.Ticket.WinningSum(), ShouldEqual, 1)
			})

			Convey("Then the ready flag is consumed immediately", func() {
				So(svc.GetState().BackstopReady, ShouldBeFalse)
				So(svc.GetState().Stats.BackstopsUsed, ShouldEqual, 1)
			})

			Convey("When the rest is revealed and claimed", func() {
				for idx := 1; idx < 4; idx++ {
					_, err := svc.RevealAt(ctx, "inv_bs", idx)
					So(err, ShouldBeNil)
				}
				sum, err := svc.Claim(ctx, "inv_bs")
				So(err, ShouldBeNil)

				Convey("Then the backstopped payout lands and counts as a loss", func() {
					So(sum.Payout, ShouldEqual, 1)
					So(sum.Backstop, ShouldBeTrue)
					st := svc.GetState()
					So(st.PityCount, ShouldEqual, 1)
					So(st.BackstopReady, ShouldBeFalse)
				})
			})
		})
	})

	Convey("A grid already at the floor consumes the charge without a rewrite", t, func() {
		clk := &fakeClock{t: testBase}
		svc := newTestService(clk)
		tk := winningTicket(10)
		for i := range tk.Tiles {
			tk.Tiles[i].Revealed = false
		}
		tk.FirstRevealAt = 0
		it := item("inv_rich", "z1", tk)
		it.State = service.ItemSealed
		importState(svc, &service.State{
			Money:         50,
			BackstopReady: true,
			Inventory:     []*service.Item{it},
		})

		got, err := svc.RevealAt(ctx, "inv_rich", 0)
		So(err, ShouldBeNil)
		So(got.Ticket.Tiles[0].Prize, ShouldEqual, 10)
		So(got.Ticket.BackstopApplied, ShouldBeTrue)
		So(svc.GetState().BackstopReady, ShouldBeFalse)
		So(svc.GetState().Stats.BackstopsUsed, ShouldEqual, 1)

		for idx := 1; idx < 4; idx++ {
			_, err := svc.RevealAt(ctx, "inv_rich", idx)
			So(err, ShouldBeNil)
		}
		sum, err := svc.Claim(ctx, "inv_rich")
		So(err, ShouldBeNil)
		So(sum.Backstop, ShouldBeTrue)
		So(sum.Payout, ShouldEqual, 10)
	})

	Convey("Six straight claimed losses arm the backstop from zero", t, func() {
		clk := &fakeClock{t: testBase}
		svc := newTestService(clk)
		items := make([]*service.Item, 0, 6)
		for i := 0; i < 6; i++ {
			items = append(items, item(string(rune('a'+i))+"_loss", "z1", losingTicket()))
		}
		importState(svc, &service.State{Money: 50, Inventory: items})

		for i := 0; i < 5; i++ {
			_, err := svc.Claim(ctx, items[i].ID)
			So(err, ShouldBeNil)
			So(svc.GetState().BackstopReady, ShouldBeFalse)
		}
		_, err := svc.Claim(ctx, items[5].ID)
		So(err, ShouldBeNil)
		So(svc.GetState().BackstopReady, ShouldBeTrue)
		So(svc.GetState().PityCount, ShouldEqual, 0)
	})
}

func TestStreakMeter(t *testing.T) {
	ctx := context.Background()

	Convey("Given a fixed clock", t, func() {
		clk := &fakeClock{t: testBase}
		svc := newTestService(clk)

		full := func(count int) *service.State {
			return &service.State{
				Money: 50,
				Streak: service.Streak{
					Count:     count,
					ExpiresAt: clk.t.Add(3 * time.Minute).UnixMilli(),
				},
			}
		}

		Convey("A six-claim streak with a full window shows 5%", func() {
			importState(svc, full(6))
			v := svc.StreakMetrics()
			So(v.Stage, ShouldEqual, 3)
			So(v.Fill, ShouldAlmostEqual, 1.0, 0.001)
			So(v.Percent, ShouldEqual, 5)
			So(v.Multiplier, ShouldAlmostEqual, 1.05, 0.0001)
		})

		Convey("Half the window gone drops stage three to 4%", func() {
			importState(svc, full(6))
			clk.Advance(90 * time.Second)
			v := svc.StreakMetrics()
			So(v.Fill, ShouldAlmostEqual, 0.5, 0.001)
			So(v.Percent, ShouldEqual, 4)
		})

		Convey("A four-claim streak with a full window shows 4%", func() {
			importState(svc, full(4))
			v := svc.StreakMetrics()
			So(v.Stage, ShouldEqual, 2)
			So(v.Fill, ShouldAlmostEqual, 0.8, 0.001)
			So(v.Percent, ShouldEqual, 4)
		})

		Convey("A two-claim streak shows the 2% floor", func() {
			importState(svc, full(2))
			v := svc.StreakMetrics()
			So(v.Stage, ShouldEqual, 1)
			So(v.Percent, ShouldEqual, 2)
		})

		Convey("One claim lights nothing", func() {
			importState(svc, full(1))
			v := svc.StreakMetrics()
			So(v.Stage, ShouldEqual, 0)
			So(v.Percent, ShouldEqual, 0)
			So(v.Multiplier, ShouldEqual, 1)
		})

		Convey("An expired streak decays lazily on read", func() {
			importState(svc, full(6))
			clk.Advance(3*time.Minute + time.Second)
			v := svc.StreakMetrics()
			So(v.Count, ShouldEqual, 0)
			So(v.Multiplier, ShouldEqual, 1)
		})

		Convey("The streak multiplier applies to the next claim's payout", func() {
			st := full(6)
			st.Inventory = []*service.Item{item("inv_m", "z1", winningTicket(100))}
			importState(svc, st)
			sum, err := svc.Claim(ctx, "inv_m")
			So(err, ShouldBeNil)
			So(sum.Payout, ShouldEqual, 105)
		})
	})
}

func TestRevealFlow(t *testing.T) {
	ctx := context.Background()

	Convey("Given a sealed purchased ticket", t, func() {
		clk := &fakeClock{t: testBase}
		svc := newTestService(clk)
		res, err := svc.PurchaseTickets(ctx, "z1", 1)
		So(err, ShouldBeNil)
		id := res.Items[0].ID

		Convey("The first reveal attaches the generated ticket", func() {
			got, err := svc.RevealAt(ctx, id, 0)
			So(err, ShouldBeNil)
			So(got.Ticket, ShouldNotBeNil)
			So(got.Ticket.Tiles, ShouldHaveLength, 4)
			So(got.Ticket.Tiles[0].Revealed, ShouldBeTrue)
			So(got.State, ShouldEqual, service.ItemScratched)
			So(got.Ticket.FirstRevealAt, ShouldEqual, testBase.UnixMilli())
			So(svc.GetState().Stats.TilesScratched, ShouldEqual, 1)
		})

		Convey("Re-revealing the same tile does not recount it", func() {
			_, err := svc.RevealAt(ctx, id, 0)
			So(err, ShouldBeNil)
			_, err = svc.RevealAt(ctx, id, 0)
			So(err, ShouldBeNil)
			So(svc.GetState().Stats.TilesScratched, ShouldEqual, 1)
		})

		Convey("A bonus reveal on a tier without one is rejected", func() {
			_, err := svc.RevealBonus(ctx, id)
			So(err, ShouldEqual, service.ErrNoBonusBox)
		})

		Convey("Unknown items are rejected", func() {
			_, err := svc.RevealAt(ctx, "inv_missing", 0)
			So(err, ShouldEqual, service.ErrUnknownItem)
		})

		Convey("An out-of-range index is rejected before anything mutates", func() {
			for _, idx := range []int{-1, 4, 99} {
				_, err := svc.RevealAt(ctx, id, idx)
				So(err, ShouldEqual, service.ErrInvalidIndex)
			}
			got, err := svc.ItemByID(id)
			So(err, ShouldBeNil)
			So(got.State, ShouldEqual, service.ItemSealed)
			So(got.Ticket, ShouldBeNil)
			st := svc.GetState()
			So(st.Stats.TilesScratched, ShouldEqual, 0)
			So(st.Stats.TicketsScratched, ShouldEqual, 0)
		})

		Convey("A bad index on an armed backstop leaves the charge intact", func() {
			importState(svc, &service.State{
				Money:         50,
				BackstopReady: true,
				Inventory: []*service.Item{func() *service.Item {
					tk := losingTicket()
					for i := range tk.Tiles {
						tk.Tiles[i].Revealed = false
					}
					tk.FirstRevealAt = 0
					it := item("inv_armed", "z1", tk)
					it.State = service.ItemSealed
					return it
				}()},
			})
			_, err := svc.RevealAt(ctx, "inv_armed", 7)
			So(err, ShouldEqual, service.ErrInvalidIndex)
			So(svc.GetState().BackstopReady, ShouldBeTrue)
		})
	})

	Convey("The scratch-radius upgrade widens each tap", t, func() {
		clk := &fakeClock{t: testBase}
		svc := newTestService(clk)
		importState(svc, &service.State{
			Money:    100,
			Upgrades: map[string]int{"scratch_radius": 3},
			Inventory: []*service.Item{func() *service.Item {
				tk := losingTicket()
				for i := range tk.Tiles {
					tk.Tiles[i].Revealed = false
				}
				tk.FirstRevealAt = 0
				it := item("inv_all", "z1", tk)
				it.State = service.ItemSealed
				return it
			}()},
		})

		got, err := svc.RevealAt(ctx, "inv_all", 0)
		So(err, ShouldBeNil)
		So(got.Ticket.FullyRevealed(), ShouldBeTrue)
		So(svc.GetState().Stats.TilesScratched, ShouldEqual, 4)
	})
}
