package api

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rustyeddy/tradelog/backtest"
	"github.com/rustyeddy/tradelog/calendar"
	"github.com/rustyeddy/tradelog/journal"
	"github.com/rustyeddy/tradelog/risk"
	"github.com/rustyeddy/tradelog/trade"
	"github.com/shopspring/decimal"
)

// tradeView is a trade plus the figures derived from its stop.
type tradeView struct {
	Trade        trade.Trade         `json:"trade"`
	PossibleLoss decimal.Decimal     `json:"possible_loss"`
	RMultiple    decimal.NullDecimal `json:"r_multiple"`
}

func (s *Server) view(t trade.Trade) tradeView {
	ref := s.book.Reference()
	return tradeView{
		Trade:        t,
		PossibleLoss: risk.PossibleLoss(t, ref.Catalog, ref.Rates),
		RMultiple:    risk.RMultiple(t, ref.Catalog, ref.Rates),
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, journal.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, journal.ErrDuplicateKey):
		status = http.StatusConflict
	case errors.Is(err, journal.ErrInvalidInput),
		errors.Is(err, trade.ErrInvalid):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "path", c.FullPath(), "err", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// snapshot binds the query's filter and loads the trades in its date
// range. The symbol part of the filter is left to the caller.
func (s *Server) snapshot(c *gin.Context) ([]trade.Trade, backtest.Filter, bool) {
	var f backtest.Filter
	if err := c.ShouldBindQuery(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, f, false
	}
	trades, err := s.book.Between(c.Request.Context(), f.Start, f.End)
	if err != nil {
		s.fail(c, err)
		return nil, f, false
	}
	return trades, f, true
}

func (s *Server) handleListTrades(c *gin.Context) {
	trades, f, ok := s.snapshot(c)
	if !ok {
		return
	}
	trades = f.Apply(trades)
	if trades == nil {
		trades = []trade.Trade{}
	}
	c.JSON(http.StatusOK, gin.H{"trades": trades, "count": len(trades)})
}

func (s *Server) handleAddTrade(c *gin.Context) {
	var in trade.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := s.book.Add(c.Request.Context(), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, s.view(t))
}

func (s *Server) handleGetTrade(c *gin.Context) {
	t, err := s.book.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s.view(t))
}

func (s *Server) handleEditTrade(c *gin.Context) {
	var in trade.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := s.book.Edit(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s.view(t))
}

func (s *Server) handleDeleteTrade(c *gin.Context) {
	if err := s.book.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleBacktest(c *gin.Context) {
	trades, f, ok := s.snapshot(c)
	if !ok {
		return
	}
	symbols, err := s.book.Symbols(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	if symbols == nil {
		symbols = []string{}
	}
	res := backtest.Run(trades, f)
	c.JSON(http.StatusOK, gin.H{
		"filter":         f,
		"symbols":        symbols,
		"traded_symbols": backtest.Symbols(res.Trades),
		"result":         res,
	})
}

func (s *Server) handleCalendar(c *gin.Context) {
	month := c.DefaultQuery("month", calendar.CurrentMonth(s.now()))
	span := calendar.MonthDays(month)
	if span == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
		return
	}
	trades, err := s.book.Between(c.Request.Context(), span[0], span[len(span)-1])
	if err != nil {
		s.fail(c, err)
		return
	}

	days := calendar.AggregateByDay(trades, month)
	win, lose := days.WinLoss()
	c.JSON(http.StatusOK, gin.H{
		"month":        month,
		"days":         days,
		"winning_days": win,
		"losing_days":  lose,
	})
}

// handleCalendarExport exports the day buckets of the filtered trades.
func (s *Server) handleCalendarExport(c *gin.Context) {
	trades, f, ok := s.snapshot(c)
	if !ok {
		return
	}
	res := backtest.Run(trades, f)
	recs := calendar.Export(res.TradesByDay, res.Trades)

	var buf bytes.Buffer
	if err := calendar.WriteExport(&buf, recs); err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
}

func (s *Server) handleDay(c *gin.Context) {
	trades, err := s.book.Day(c.Request.Context(), c.Param("day"))
	if err != nil {
		s.fail(c, err)
		return
	}
	day := backtest.Sort(trades)
	views := make([]tradeView, 0, len(day))
	for _, t := range day {
		views = append(views, s.view(t))
	}
	c.JSON(http.StatusOK, gin.H{"day": c.Param("day"), "trades": views})
}

func (s *Server) handleDashboard(c *gin.Context) {
	trades, err := s.book.Snapshot(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, backtest.Overview(trades, s.now()))
}

func (s *Server) handleInstruments(c *gin.Context) {
	ref := s.book.Reference()
	c.JSON(http.StatusOK, gin.H{
		"settlement":  ref.Settlement,
		"symbols":     ref.Catalog.Symbols(),
		"instruments": ref.Catalog,
		"rates":       ref.Rates,
	})
}

func (s *Server) handlePositionSize(c *gin.Context) {
	var in risk.Inputs
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := risk.Calculate(in, s.book.Reference())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}
