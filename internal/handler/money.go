package handler

import (
	"fmt"

	"github.com/spf13/cobra"

	"persona-tracker/internal/service"
)

// MoneyHandler handles ledger commands.
type MoneyHandler struct {
	ledger *service.LedgerService
}

// NewMoneyHandler creates a new MoneyHandler.
func NewMoneyHandler(ledger *service.LedgerService) *MoneyHandler {
	return &MoneyHandler{ledger: ledger}
}

// Commands returns the money command tree.
func (h *MoneyHandler) Commands() []*cobra.Command {
	cmd := &cobra.Command{
		Use:   "money",
		Short: "Show the balance",
		Args:  cobra.NoArgs,
		RunE:  h.handleShow,
	}
	show := &cobra.Command{
		Use:   "show",
		Short: "Show the balance and totals",
		Args:  cobra.NoArgs,
		RunE:  h.handleShow,
	}
	cmd.AddCommand(
		show,
		h.deltaCmd("income", "Record income", 1),
		h.deltaCmd("expense", "Record an expense", -1),
	)
	return []*cobra.Command{cmd}
}

func (h *MoneyHandler) handleShow(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	balance, err := h.ledger.Balance(ctx)
	if err != nil {
		return err
	}
	totals, err := h.ledger.Totals(ctx)
	if err != nil {
		return err
	}

	w := out(cmd)
	fmt.Fprintf(w, "Balance: %s\n", formatYen(balance))
	fmt.Fprintf(w, "Income:  %s\n", formatYen(totals.Income))
	fmt.Fprintf(w, "Expense: %s\n", formatYen(totals.Expense))
	return nil
}

func (h *MoneyHandler) deltaCmd(use, short string, sign int64) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <amount>",
		Short: short,
		Args:  exactArgs(1, "amount"),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			balance, err := h.ledger.ApplyDelta(cmd.Context(), sign*amount)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "%s: %s → %s\n", use, formatSigned(sign*amount), formatYen(balance))
			return nil
		},
	}
}
