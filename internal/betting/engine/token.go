package engine

import "context"

// Token é o componente externo que guarda saldos e executa transferências.
// Qualquer erro aborta a operação do ledger que o chamou.
type Token interface {
	// TransferFrom move fundos de um holder para outro (exige allowance prévia)
	TransferFrom(ctx context.Context, from, to string, amountCents int64) error
	// Transfer move fundos da conta de custódia do ledger para o destinatário
	Transfer(ctx context.Context, to string, amountCents int64) error
	// BalanceOf consulta o saldo de uma conta (apenas observabilidade)
	BalanceOf(ctx context.Context, account string) (int64, error)
}
