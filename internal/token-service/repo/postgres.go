package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// Postgres implementa o token fungível custodial em banco
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

var (
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrNotFound              = errors.New("not found")
)

// GetOrCreateAccount retorna o saldo de um usuário, criando a conta
// zerada se não existir
func (p *Postgres) GetOrCreateAccount(ctx context.Context, userID string) (balance int64, err error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `SELECT balance_cents FROM token_accounts WHERE user_id=$1`, userID).Scan(&balance)
	if err == sql.ErrNoRows {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO token_accounts(user_id, balance_cents, version) VALUES($1,0,1)`,
			userID); err != nil {
			return 0, err
		}
		balance = 0
	} else if err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return balance, nil
}

// Mint credita saldo novo (equivalente ao faucet/deposit do POC) e
// registra a operação no ledger do token
func (p *Postgres) Mint(ctx context.Context, userID string, amount int64, externalRef string) (newBalance int64, err error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO token_accounts(user_id, balance_cents, version) VALUES($1,$2,1)
		ON CONFLICT (user_id) DO UPDATE SET
		  balance_cents = token_accounts.balance_cents + EXCLUDED.balance_cents,
		  version = token_accounts.version + 1`,
		userID, amount); err != nil {
		return 0, err
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO token_ledger(id, operation_type, to_user_id, amount_cents, description)
		VALUES($1,'MINT',$2,$3,$4)`,
		uuid.NewString(), userID, amount, "mint:"+externalRef); err != nil {
		return 0, err
	}

	if err = tx.QueryRowContext(ctx, `SELECT balance_cents FROM token_accounts WHERE user_id=$1`, userID).Scan(&newBalance); err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return newBalance, nil
}

// Approve fixa a allowance de um spender sobre os fundos do holder
// (semântica approve do ERC-20: substitui, não acumula)
func (p *Postgres) Approve(ctx context.Context, holderID, spenderID string, amount int64) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO token_allowances(holder_id, spender_id, amount_cents)
		VALUES($1,$2,$3)
		ON CONFLICT (holder_id, spender_id) DO UPDATE SET amount_cents = EXCLUDED.amount_cents`,
		holderID, spenderID, amount)
	return err
}

// Allowance consulta quanto um spender ainda pode mover do holder
func (p *Postgres) Allowance(ctx context.Context, holderID, spenderID string) (int64, error) {
	var amount int64
	err := p.db.QueryRowContext(ctx,
		`SELECT amount_cents FROM token_allowances WHERE holder_id=$1 AND spender_id=$2`,
		holderID, spenderID).Scan(&amount)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return amount, err
}

// Transfer move fundos entre contas. Locks em ordem determinística de
// user_id para evitar deadlock entre transferências cruzadas.
func (p *Postgres) Transfer(ctx context.Context, fromID, toID string, amount int64) (transferID string, err error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	transferID, err = p.transferLocked(ctx, tx, fromID, toID, amount, "transfer")
	if err != nil {
		return "", err
	}

	if err = tx.Commit(); err != nil {
		return "", err
	}
	return transferID, nil
}

// TransferFrom move fundos do holder consumindo a allowance do spender
func (p *Postgres) TransferFrom(ctx context.Context, spenderID, fromID, toID string, amount int64) (transferID string, err error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	var allowed int64
	err = tx.QueryRowContext(ctx, `
		SELECT amount_cents FROM token_allowances
		WHERE holder_id=$1 AND spender_id=$2 FOR UPDATE`,
		fromID, spenderID).Scan(&allowed)
	if err == sql.ErrNoRows || (err == nil && allowed < amount) {
		return "", ErrInsufficientAllowance
	} else if err != nil {
		return "", err
	}

	if _, err = tx.ExecContext(ctx, `
		UPDATE token_allowances SET amount_cents = amount_cents - $1
		WHERE holder_id=$2 AND spender_id=$3`,
		amount, fromID, spenderID); err != nil {
		return "", err
	}

	transferID, err = p.transferLocked(ctx, tx, fromID, toID, amount, "transfer-from:"+spenderID)
	if err != nil {
		return "", err
	}

	if err = tx.Commit(); err != nil {
		return "", err
	}
	return transferID, nil
}

// transferLocked debita/credita dentro da transação corrente
func (p *Postgres) transferLocked(ctx context.Context, tx *sql.Tx, fromID, toID string, amount int64, desc string) (string, error) {
	// lock das duas contas em ordem estável
	first, second := fromID, toID
	if second < first {
		first, second = second, first
	}
	for _, id := range []string{first, second} {
		var dummy int64
		err := tx.QueryRowContext(ctx, `SELECT balance_cents FROM token_accounts WHERE user_id=$1 FOR UPDATE`, id).Scan(&dummy)
		if err == sql.ErrNoRows && id == toID {
			// conta destino é criada sob demanda
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO token_accounts(user_id, balance_cents, version) VALUES($1,0,1)`, id); err != nil {
				return "", err
			}
			continue
		}
		if err == sql.ErrNoRows {
			return "", ErrNotFound
		}
		if err != nil {
			return "", err
		}
	}

	var balance int64
	if err := tx.QueryRowContext(ctx, `SELECT balance_cents FROM token_accounts WHERE user_id=$1`, fromID).Scan(&balance); err != nil {
		return "", err
	}
	if balance < amount {
		return "", ErrInsufficientFunds
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE token_accounts SET balance_cents = balance_cents - $1, version = version + 1 WHERE user_id=$2`,
		amount, fromID); err != nil {
		return "", err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE token_accounts SET balance_cents = balance_cents + $1, version = version + 1 WHERE user_id=$2`,
		amount, toID); err != nil {
		return "", err
	}

	transferID := uuid.NewString()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO token_ledger(id, operation_type, from_user_id, to_user_id, amount_cents, description)
		VALUES($1,'TRANSFER',$2,$3,$4,$5)`,
		transferID, fromID, toID, amount, desc); err != nil {
		return "", err
	}
	return transferID, nil
}
