package entities

import "testing"

func TestMergePermissions(t *testing.T) {
	rows := []*DocPermission{
		{Parent: "Sales Order", PermLevel: 1, Capabilities: Capabilities{Read: true}},
		{Parent: "Sales Order", PermLevel: 0, Source: PermissionSourceStandard, Capabilities: Capabilities{Write: true}},
		{Parent: "Sales Order", PermLevel: 2, Source: PermissionSourceCustom, Capabilities: Capabilities{Delete: true}},
		{Parent: "Customer", PermLevel: 0, Capabilities: Capabilities{Read: true}},
	}

	merged := MergePermissions(rows)

	t.Run("padrão e customizada da mesma entidade ficam separadas", func(t *testing.T) {
		if len(merged) != 3 {
			t.Fatalf("esperava 3 linhas combinadas, obteve %d", len(merged))
		}
		if merged[1].Source != PermissionSourceCustom || merged[2].Source != PermissionSourceStandard {
			t.Errorf("ordem inesperada: %+v", merged)
		}
		if merged[1].Capabilities.Read || merged[1].Capabilities.Write {
			t.Errorf("capacidades padrão vazaram para a customizada: %+v", merged[1].Capabilities)
		}
	})

	t.Run("combina as linhas padrão com OU e menor nível", func(t *testing.T) {
		std := merged[2]
		if std.Parent != "Sales Order" || std.SourceRows != 2 {
			t.Fatalf("linha padrão inesperada: %+v", std)
		}
		if !std.Capabilities.Read || !std.Capabilities.Write || std.Capabilities.Delete {
			t.Errorf("capacidades inesperadas: %+v", std.Capabilities)
		}
		if std.PermLevel != 0 {
			t.Errorf("esperava nível 0, obteve %d", std.PermLevel)
		}
	})

	t.Run("ordena por entidade", func(t *testing.T) {
		if merged[0].Parent != "Customer" {
			t.Errorf("esperava Customer primeiro, obteve %s", merged[0].Parent)
		}
	})
}
