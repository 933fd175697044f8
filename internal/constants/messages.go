package constants

// Wire messages kept verbatim for compatibility with existing clients
const (
	MsgSignupSuccess  = "Usuário cadastrado com Sucesso!"
	MsgUserExists     = "O usuário com esse email já existe"
	MsgInvalidData    = "Dados inválidos."
	MsgInternalError  = "Algo deu errado."
	MsgBadCredentials = "Credenciais incorretas"
	MsgNotApproved    = "Acesso não aprovado pelo administrador"
)

// Required signup fields
var SignupRequiredFields = []string{"nome", "telefone", "email", "password"}
