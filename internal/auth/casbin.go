package auth

import (
	"log"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

// InitCasbin defines the RBAC model and initializes the enforcer with GORM adapter
func InitCasbin(db *gorm.DB) (*casbin.Enforcer, error) {
	// GORM adapter creates the casbin_rule table
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}

	// Subjects are roles taken from the token's role claim
	text := `
		[request_definition]
		r = sub, obj, act

		[policy_definition]
		p = sub, obj, act

		[role_definition]
		g = _, _

		[policy_effect]
		e = some(where (p.eft == allow))

		[matchers]
		m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
	`

	m, err := model.NewModelFromString(text)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}

	// Seed default role policies on first run
	policies, _ := enforcer.GetPolicy()
	if len(policies) == 0 {
		log.Println("Casbin: No policies found, initializing default role policies...")

		defaults := [][]string{
			{"admin", "/api/usuarios/*", "(GET)|(POST)|(PUT)|(DELETE)"},
			{"admin", "/api/usuarios", "GET"},
			{"user", "/api/usuarios/me", "GET"},
		}
		for _, p := range defaults {
			if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
				log.Printf("Failed to add default policy %v: %v", p, err)
			}
		}
		if err := enforcer.SavePolicy(); err != nil {
			log.Printf("Failed to save default policies: %v", err)
		}
	}

	log.Println("Casbin initialized successfully")
	return enforcer, nil
}
