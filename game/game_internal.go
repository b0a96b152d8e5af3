// Copyright ©2020 BlinnikovAA. All rights reserved.
// This file is part of yagogame.
//
// yagogame is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// yagogame is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with yagogame.  If not, see <https://www.gnu.org/licenses/>.

package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yagoggame/decaymaster/game/decay"
	"github.com/yagoggame/decaymaster/game/field"
	"github.com/yagoggame/decaymaster/game/interfaces"
	"github.com/yagoggame/decaymaster/game/inventory"
	"github.com/yagoggame/decaymaster/game/setup"
	"github.com/yagoggame/decaymaster/game/turn"
)

// gameAction is a type with game action values
type gameAction int

// set of actions values of Game object
const (
	joinCMD       gameAction = iota //join This Game
	endCMD                          //finish this game
	gamerStateCMD                   //state of a joined gamer
	leaveCMD                        //leave a game
	idCMD                           //game session id
	placeCMD                        //place for the side to move
	makeTurnCMD                     //place for a joined gamer
	cycleCMD                        //recolor an initial stone
	beginCMD                        //leave setup
	resetCMD                        //start over
	stateCMD                        //full snapshot
	legalCMD                        //legal moves
	cellCMD                         //one cell
	scoreCMD                        //stones per side
	inventoryCMD                    //accent units left
	stepCMD                         //next step of a resolving placement, posted by timers

	//action, which can cause an awaiting
	wIdleCMD //wait for the placement to resolve
	wTurnCMD //wait for your turn
)

// stage of a resolving placement
type stage int

const (
	stageDraw      stage = iota // draw decay targets
	stageHighlight              // highlight the next target
	stageApply                  // decay the highlighted target
)

// gameCommand is a type to hold a comand to a Game
type gameCommand struct {
	act    gameAction
	gamer  *Gamer
	id     int
	side   interfaces.Side
	turn   interfaces.TurnData
	accent interfaces.Accent
	stage  stage
	seq    int
	rez    chan<- interface{}
}

// session holds all state of one game. It is touched only by the game goroutine.
type session struct {
	id       string
	field    *field.Field
	inv      *inventory.Inventory
	turns    *turn.Controller
	sampler  decay.Sampler
	opts     Options
	logger   *zap.Logger
	observer func(Notification)

	gamerStates map[int]*GamerState
	abandoned   bool
	closed      bool

	// decay phase of the resolving placement
	seq         int
	phase       *decay.Phase
	highlighted *interfaces.TurnData
	idleWaiters []chan<- interface{}

	// steps carries stage commands from timers to the loop. It is never
	// closed; done is closed when the loop stops serving.
	steps chan *gameCommand
	done  chan struct{}
	timer *time.Timer
}

func newSession(opts *Options) (*session, error) {
	var o Options
	if opts != nil {
		o = *opts
	}
	if o.Sampler == nil {
		o.Sampler = decay.NewSampler(time.Now().UnixNano())
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}

	id := uuid.NewString()
	inv := inventory.New(o.Stock)
	s := &session{
		id:          id,
		field:       field.New(inv),
		inv:         inv,
		turns:       turn.New(),
		sampler:     o.Sampler,
		opts:        o,
		logger:      o.Logger.With(zap.String("game_id", id)),
		observer:    o.Observer,
		gamerStates: make(map[int]*GamerState),
		steps:       make(chan *gameCommand),
		done:        make(chan struct{}),
	}
	if err := setup.Arrange(s.field, s.inv, interfaces.DefaultAccent); err != nil {
		return nil, fmt.Errorf("failed to arrange game: %w", err)
	}
	return s, nil
}

// recoverAsErr processes the panic
// on any action after closing the Game as chanel
func recoverAsErr(err *error) {
	r := recover()
	if r == nil {
		return
	}

	if errR, ok := r.(error); ok {
		*err = errR
		if strings.Compare((*err).Error(), "send on closed channel") != 0 {
			panic(r)
		}
		*err = ErrResourceNotAvailable
		return
	}
	panic(r)
}

// Process queries

// join implements concurrently safe processing of querry of
// Join function
func (s *session) join(gamer *Gamer, rezChan chan<- interface{}) {
	defer close(rezChan)

	if gamer == nil {
		rezChan <- fmt.Errorf("failed to join: %w: nil gamer", ErrUnknownID)
		return
	}
	if len(s.gamerStates) > 1 {
		rezChan <- ErrNoPlace
		return
	}
	if s.abandoned {
		rezChan <- turn.ErrGameOver
		return
	}
	if _, ok := s.gamerStates[gamer.ID]; ok {
		rezChan <- fmt.Errorf("failed to join gamer with id %d: %w", gamer.ID, ErrNoPlace)
		return
	}

	side := interfaces.Black
	for _, gs := range s.gamerStates {
		side = gs.Side.Opponent()
	}

	s.gamerStates[gamer.ID] = &GamerState{
		Side: side,
		Name: gamer.Name,
	}
	s.logger.Info("gamer joined", zap.Int("gamer_id", gamer.ID), zap.Stringer("side", side))
}

// gamerState implements concurrently safe processing of querry of
// GamerState function
func (s *session) gamerState(id int, rezChan chan<- interface{}) {
	defer close(rezChan)

	gs, ok := s.gamerStates[id]
	if !ok {
		rezChan <- fmt.Errorf("failed to gamerState for gamer with id %d: %w", id, ErrUnknownID)
		return
	}

	//make a copy of gamer state to prevent change from the outside
	gsCpy := *gs
	gsCpy.turnMSGChan = nil
	gsCpy.Stock = s.inv.Snapshot()[gs.Side]
	gsCpy.ToMove = s.isTurnOf(gs.Side)
	rezChan <- &gsCpy
}

// leaveGame implements concurrently safe processing of querry of
// Leave function
func (s *session) leaveGame(id int, rezChan chan<- interface{}) {
	defer close(rezChan)

	if _, ok := s.gamerStates[id]; !ok {
		rezChan <- fmt.Errorf("failed to leaveGame for gamer with id %d: %w", id, ErrUnknownID)
		return
	}

	for _, gs := range s.gamerStates {
		reportOnChan(&gs.turnMSGChan, ErrOtherGamerLeft)
	}
	delete(s.gamerStates, id)
	s.abandoned = true
	s.logger.Info("gamer left", zap.Int("gamer_id", id))
}

// place implements concurrently safe processing of querries of
// TryPlace and MakeTurn functions
func (s *session) place(cmd *gameCommand) {
	defer close(cmd.rez)

	side := s.turns.Current()
	if cmd.act == makeTurnCMD {
		gs, ok := s.gamerStates[cmd.id]
		if !ok {
			cmd.rez <- fmt.Errorf("failed to makeTurn for gamer with id %d: %w", cmd.id, ErrUnknownID)
			return
		}
		if s.abandoned {
			cmd.rez <- turn.ErrGameOver
			return
		}
		side = gs.Side
	}

	if err := s.turns.Accept(side); err != nil {
		cmd.rez <- fmt.Errorf("failed to place for %v: %w", side, err)
		return
	}

	// the side to move normally has a move: passes are resolved after every
	// turn change. Check again right before accepting input.
	if len(s.moves().LegalMoves(side)) == 0 {
		s.resolve(s.turns.Resolve(s.moves()))
		cmd.rez <- fmt.Errorf("failed to place for %v: %w: no legal move", side, turn.ErrNotYourTurn)
		return
	}

	flips, err := s.field.Move(side, cmd.turn, cmd.accent)
	if err != nil {
		s.logger.Debug("placement rejected", zap.Stringer("side", side), zap.Stringer("pos", cmd.turn), zap.Error(err))
		cmd.rez <- fmt.Errorf("failed to place for %v: %w", side, err)
		return
	}

	if err := s.turns.StartPlacing(); err != nil {
		cmd.rez <- err
		return
	}
	s.logger.Info("stone placed",
		zap.Stringer("side", side),
		zap.Stringer("pos", cmd.turn),
		zap.Stringer("accent", cmd.accent),
		zap.Int("flips", len(flips)))
	s.notify(Notification{Kind: Placed, Side: side, Pos: cmd.turn, Accent: cmd.accent, Flips: flips})

	s.seq++
	s.schedule(s.opts.Pacing.Settle, stageDraw)
}

// step implements processing of the decay phase, one stage per command
func (s *session) step(cmd *gameCommand) {
	if cmd.seq != s.seq {
		// step of a placement discarded by Reset
		return
	}

	switch cmd.stage {
	case stageDraw:
		s.draw()
	case stageHighlight:
		s.highlight()
	case stageApply:
		s.apply()
	}
}

func (s *session) draw() {
	if err := s.turns.StartDecay(); err != nil {
		s.logger.Error("decay phase out of order", zap.Error(err))
		return
	}
	phase, err := decay.Start(s.field, s.sampler)
	if err != nil {
		s.logger.Error("failed to plan decay", zap.Error(err))
	}
	s.phase = phase
	s.logger.Debug("decay drawn", zap.Int("targets", phase.Len()))
	s.notify(Notification{Kind: DecayStarted, Targets: phase.Len()})
	s.highlight()
}

// highlight shows the next decay target, or finishes the phase if none is left
func (s *session) highlight() {
	target, ok := s.phase.Next()
	if !ok {
		s.phase = nil
		s.finish()
		return
	}
	pos := target.Pos
	s.highlighted = &pos
	s.notify(Notification{Kind: DecayHighlighted, Pos: target.Pos, Accent: target.Accent})
	s.schedule(s.opts.Pacing.Blink, stageApply)
}

func (s *session) apply() {
	target, _ := s.phase.Next()
	s.highlighted = nil

	st, err := s.phase.Step()
	if err != nil {
		s.logger.Error("failed to apply decay", zap.Stringer("pos", target.Pos), zap.Error(err))
		s.highlight()
		return
	}
	s.logger.Info("stone decayed",
		zap.Stringer("pos", st.Pos),
		zap.Stringer("accent", target.Accent),
		zap.Stringer("owner", st.After.Owner))
	s.notify(Notification{Kind: DecayCleared, Pos: st.Pos, Accent: target.Accent, Step: st})
	s.schedule(s.opts.Pacing.AfterDecay, stageHighlight)
}

// finish advances the turn once the decay phase ran to completion
func (s *session) finish() {
	s.notify(Notification{Kind: DecayFinished, Score: s.field.Score()})
	out, err := s.turns.Advance(s.moves())
	if err != nil {
		s.logger.Error("failed to advance turn", zap.Error(err))
		return
	}
	s.notify(Notification{Kind: TurnChanged, Side: out.Moved})
	s.resolve(out)
}

// resolve reports the outcome of pass resolution and wakes waiters
func (s *session) resolve(out turn.Outcome) {
	if out.Passed != interfaces.NoSide {
		s.logger.Info("side passed", zap.Stringer("side", out.Passed))
		s.notify(Notification{Kind: Passed, Side: out.Passed})
		if !out.GameOver {
			s.notify(Notification{Kind: TurnChanged, Side: out.Current})
		}
	}
	if out.GameOver {
		score := s.field.Score()
		s.logger.Info("game over",
			zap.Int("black", score[interfaces.Black]),
			zap.Int("white", score[interfaces.White]))
		s.notify(Notification{Kind: Over, Score: score, Side: score.Winner()})
	}
	s.reportIdle()
}

// cycle implements concurrently safe processing of querry of
// CycleSetupAccent function
func (s *session) cycle(td interfaces.TurnData, rezChan chan<- interface{}) {
	defer close(rezChan)

	if err := s.turns.CheckSetup(); err != nil {
		rezChan <- err
		return
	}
	accent, err := setup.Cycle(s.field, s.inv, td)
	if err != nil {
		rezChan <- err
		return
	}
	s.notify(Notification{Kind: SetupChanged, Pos: td, Accent: accent})
	rezChan <- accent
}

// begin implements concurrently safe processing of querry of
// BeginPlay function
func (s *session) begin(rezChan chan<- interface{}) {
	defer close(rezChan)

	out, err := s.turns.Begin(s.moves())
	if err != nil {
		rezChan <- err
		return
	}
	s.logger.Info("play begun")
	s.notify(Notification{Kind: PlayBegun, Side: interfaces.Black})
	s.resolve(out)
}

// reset implements concurrently safe processing of querry of
// Reset function
func (s *session) reset(rezChan chan<- interface{}) {
	defer close(rezChan)

	s.discardSteps()
	s.phase = nil
	s.highlighted = nil
	s.inv.Reset()
	s.field.Reset()
	s.turns.Reset()
	if err := setup.Arrange(s.field, s.inv, interfaces.DefaultAccent); err != nil {
		rezChan <- err
		return
	}
	s.logger.Info("game reset")
	s.notify(Notification{Kind: Reset})
	s.reportIdle()
}

func (s *session) snapshot() *Snapshot {
	snap := &Snapshot{
		ID:            s.id,
		Phase:         s.turns.Phase(),
		Current:       s.turns.Current(),
		Field:         s.field.State(),
		PendingDecays: s.phase.Len(),
	}
	if snap.Phase == turn.Idle {
		snap.Legal = s.field.LegalMoves(snap.Current)
	}
	if s.highlighted != nil {
		pos := *s.highlighted
		snap.Highlighted = &pos
	}
	return snap
}

func (s *session) legal(side interfaces.Side, rezChan chan<- interface{}) {
	defer close(rezChan)

	if side == interfaces.NoSide {
		side = s.turns.Current()
	}
	if !side.Valid() {
		rezChan <- fmt.Errorf("%w: got side: %v", field.ErrSide, side)
		return
	}
	rezChan <- s.field.LegalMoves(side)
}

func (s *session) cell(td interfaces.TurnData, rezChan chan<- interface{}) {
	defer close(rezChan)

	cell, err := s.field.CellAt(td)
	if err != nil {
		rezChan <- err
		return
	}
	rezChan <- cell
}

func (s *session) inventoryOf(side interfaces.Side, accent interfaces.Accent, rezChan chan<- interface{}) {
	defer close(rezChan)

	if !side.Valid() {
		rezChan <- fmt.Errorf("%w: got side: %v", field.ErrSide, side)
		return
	}
	if !accent.Valid() {
		rezChan <- fmt.Errorf("%w: got accent: %v", field.ErrAccent, accent)
		return
	}
	rezChan <- s.inv.Count(side, accent)
}

// waitIdle implements concurrently safe processing of querry of
// WaitIdle function
func (s *session) waitIdle(rezChan chan<- interface{}) {
	if !s.resolving() {
		close(rezChan)
		return
	}
	s.idleWaiters = append(s.idleWaiters, rezChan)
}

// waitTurn implements concurrently safe processing of querry of
// WaitTurn function
func (s *session) waitTurn(id int, rezChan chan<- interface{}) {
	gs, ok := s.gamerStates[id]
	if !ok {
		rezChan <- fmt.Errorf("failed to waitTurn for gamer with id %d: %w", id, ErrUnknownID)
		close(rezChan)
		return
	}
	if s.abandoned || s.turns.Phase() == turn.GameOver {
		rezChan <- turn.ErrGameOver
		close(rezChan)
		return
	}
	if s.isTurnOf(gs.Side) {
		close(rezChan)
		return
	}

	//put chanel to report on estimation of player's turn begin condition in safe place.
	reportOnChan(&gs.turnMSGChan, ErrCancelled)
	gs.turnMSGChan = rezChan
}

//helpers

func (s *session) moves() turn.MoveLister {
	if s.opts.PassWhenExhausted {
		return turn.WithStock(s.field, s.inv)
	}
	return s.field
}

func (s *session) resolving() bool {
	phase := s.turns.Phase()
	return phase == turn.Placing || phase == turn.Decaying
}

func (s *session) isTurnOf(side interfaces.Side) bool {
	return s.turns.Phase() == turn.Idle && s.turns.Current() == side
}

// reportIdle wakes everybody awaiting the end of a placement or a turn
func (s *session) reportIdle() {
	if s.resolving() {
		return
	}
	for i := range s.idleWaiters {
		reportOnChan(&s.idleWaiters[i], nil)
	}
	s.idleWaiters = nil

	over := s.turns.Phase() == turn.GameOver
	for _, gs := range s.gamerStates {
		switch {
		case over:
			reportOnChan(&gs.turnMSGChan, turn.ErrGameOver)
		case s.isTurnOf(gs.Side):
			reportOnChan(&gs.turnMSGChan, nil)
		}
	}
}

// reportOnChan passes deferred data if needed
func reportOnChan(rezChan *chan<- interface{}, val interface{}) {
	if *rezChan != nil {
		if val != nil {
			*rezChan <- val
		}
		close(*rezChan)
		*rezChan = nil
	}
}

func (s *session) notify(n Notification) {
	if s.observer == nil {
		return
	}
	n.GameID = s.id
	s.observer(n)
}

// schedule posts the next stage of the resolving placement after delay
func (s *session) schedule(delay time.Duration, st stage) {
	cmd := &gameCommand{act: stepCMD, stage: st, seq: s.seq}
	steps, done := s.steps, s.done
	s.timer = time.AfterFunc(delay, func() {
		select {
		case steps <- cmd:
		case <-done:
		}
	})
}

// discardSteps makes any scheduled stage stale
func (s *session) discardSteps() {
	s.seq++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// stop ends serving of the Game
func (s *session) stop(g Game) {
	s.discardSteps()
	s.closed = true
	close(s.done)
	close(g)
}

// run processes commads for thread safe operations on Game.
func (g Game) run(s *session) {
	go func(g Game) {
		defer s.release()
		for {
			var cmd *gameCommand
			select {
			case c, ok := <-g:
				if !ok {
					return
				}
				cmd = c
			case c := <-s.steps:
				cmd = c
			}

			switch cmd.act {
			case endCMD:
				s.stop(g)
				close(cmd.rez)

			case joinCMD:
				s.join(cmd.gamer, cmd.rez)
			case gamerStateCMD:
				s.gamerState(cmd.id, cmd.rez)
			case leaveCMD:
				s.leaveGame(cmd.id, cmd.rez)
			case idCMD:
				cmd.rez <- s.id
				close(cmd.rez)
			case placeCMD, makeTurnCMD:
				s.place(cmd)
			case stepCMD:
				s.step(cmd)
			case cycleCMD:
				s.cycle(cmd.turn, cmd.rez)
			case beginCMD:
				s.begin(cmd.rez)
			case resetCMD:
				s.reset(cmd.rez)
			case stateCMD:
				cmd.rez <- s.snapshot()
				close(cmd.rez)
			case legalCMD:
				s.legal(cmd.side, cmd.rez)
			case cellCMD:
				s.cell(cmd.turn, cmd.rez)
			case scoreCMD:
				cmd.rez <- s.field.Score()
				close(cmd.rez)
			case inventoryCMD:
				s.inventoryOf(cmd.side, cmd.accent, cmd.rez)
			case wIdleCMD:
				s.waitIdle(cmd.rez)
			case wTurnCMD:
				s.waitTurn(cmd.id, cmd.rez)
			}
			if !s.closed && s.abandoned && len(s.gamerStates) == 0 {
				s.stop(g)
			}
		}
	}(g)
}

// release wakes everybody still awaiting the destroyed Game
func (s *session) release() {
	for i := range s.idleWaiters {
		reportOnChan(&s.idleWaiters[i], ErrGameDestroyed)
	}
	for _, gs := range s.gamerStates {
		reportOnChan(&gs.turnMSGChan, ErrGameDestroyed)
	}
}
